// Package xflag adds flag types.
package xflag

import (
	"fmt"
	"strconv"
	"strings"
)

// IntList collects integers from a repeated flag; each value may also be a
// comma separated list, e.g. -i 10440 -i 10441,10442.
type IntList []int64

func (l *IntList) String() string {
	var parts []string
	for _, v := range *l {
		parts = append(parts, strconv.FormatInt(v, 10))
	}
	return strings.Join(parts, ",")
}

func (l *IntList) Set(value string) error {
	for _, s := range strings.Split(value, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("not an integer: %q", s)
		}
		*l = append(*l, v)
	}
	return nil
}
