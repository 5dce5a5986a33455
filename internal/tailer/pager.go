package tailer

import "io"

// readFull fills buf entirely from the absolute file offset position,
// looping over short reads. It returns (true, nil) once every byte has been
// read, (false, nil) when a read returns zero bytes before the buffer is
// full (the file ended earlier than its snapshotted size said it would), and
// (false, err) for any other read failure.
func readFull(r io.ReaderAt, buf []byte, position int64) (bool, error) {
	filled := 0
	for filled < len(buf) {
		n, err := r.ReadAt(buf[filled:], position+int64(filled))
		filled += n
		if filled == len(buf) {
			return true, nil
		}
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if n == 0 {
			return false, nil
		}
	}
	return true, nil
}
