// Package fixture generates synthetic log files for tests and load drills.
//
// The corpus is deterministic: line i reads "<i> is even" or "<i> is odd",
// newline-terminated, so expected tail output for any quota and keyword set
// can be written down by hand.
package fixture
