package mailboxes

import "database/sql/driver"

func toDriverArgs(in []any) []driver.Value {
	out := make([]driver.Value, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
