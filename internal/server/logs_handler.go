package server

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"logtap/internal/history"
	"logtap/internal/logging"
	"logtap/internal/tailer"
)

// prematureEndTrailer terminates a stream whose search failed after the 200
// header went out. The trailer is in-band and cannot be told apart from log
// data carrying the same bytes; framing the stream would fix that and is a
// known follow-up.
const prematureEndTrailer = "Premature end of stream\n"

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	query := r.URL.Query()
	fileName := strings.TrimSpace(query.Get("file"))
	keywords := query["keywords"]

	entry := history.Entry{
		RequestID: requestIDFrom(r.Context()),
		File:      fileName,
		Keywords:  keywords,
	}

	total, err := parseTotal(query.Get("total"))
	if err != nil {
		s.reject(w, r, entry, started, "total must be a non-negative integer")
		return
	}
	entry.Total = total
	if fileName == "" {
		s.reject(w, r, entry, started, "file is required")
		return
	}

	keywordBytes := make([][]byte, 0, len(keywords))
	for _, kw := range keywords {
		keywordBytes = append(keywordBytes, []byte(kw))
	}

	finder, err := tailer.NewFinder(tailer.Search{
		File:          fileName,
		Total:         total,
		Keywords:      keywordBytes,
		Root:          s.cfg.Logs.Dir,
		PageLength:    s.cfg.Logs.PageLength,
		MaxLineLength: s.cfg.Logs.MaxLineLength,
	})
	if err != nil {
		s.logger.Info("search rejected",
			logging.String("request_id", entry.RequestID),
			logging.String("file", fileName),
			logging.Error(err),
		)
		s.reject(w, r, entry, started, "file is not available")
		return
	}
	defer finder.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)

	for finder.Next() {
		if _, writeErr := w.Write(finder.Bytes()); writeErr != nil {
			// The consumer went away; the deferred Close releases the
			// file handle and the scan stops here.
			entry.Outcome = history.OutcomeFailed
			s.record(r.Context(), entry, started)
			return
		}
		entry.Matches++
		if flusher != nil {
			flusher.Flush()
		}
	}

	if scanErr := finder.Err(); scanErr != nil {
		s.logger.Warn("search ended prematurely",
			logging.String("request_id", entry.RequestID),
			logging.String("file", fileName),
			logging.Int64("matches", entry.Matches),
			logging.Error(scanErr),
		)
		_, _ = io.WriteString(w, prematureEndTrailer)
		entry.Outcome = history.OutcomeTruncated
		s.record(r.Context(), entry, started)
		return
	}

	entry.Outcome = history.OutcomeOK
	s.record(r.Context(), entry, started)
}

// reject answers 422 with a plain-text reason, the contract for requests the
// search engine never starts on.
func (s *Server) reject(w http.ResponseWriter, r *http.Request, entry history.Entry, started time.Time, reason string) {
	http.Error(w, reason, http.StatusUnprocessableEntity)
	entry.Outcome = history.OutcomeInvalid
	s.record(r.Context(), entry, started)
}

func (s *Server) record(ctx context.Context, entry history.Entry, started time.Time) {
	if s.store == nil {
		return
	}
	entry.Duration = time.Since(started)
	// The request context may already be canceled when the client hung up.
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if _, err := s.store.Record(recordCtx, entry); err != nil {
		s.logger.Warn("history write failed", logging.Error(err))
	}
}

func parseTotal(raw string) (int64, error) {
	total, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, err
	}
	if total < 0 {
		return 0, strconv.ErrRange
	}
	return total, nil
}
