package csvlayout

import "strings"

// EscapeField quotes a field when it contains a comma, a quote, or a line
// break, doubling any embedded quotes. All other fields pass through
// unchanged. The output is readable by any RFC 4180 CSV reader.
func EscapeField(field string) string {
	if !strings.ContainsAny(field, ",\"\r\n") {
		return field
	}
	var sb strings.Builder
	sb.Grow(len(field) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(field); i++ {
		if field[i] == '"' {
			sb.WriteByte('"')
		}
		sb.WriteByte(field[i])
	}
	sb.WriteByte('"')
	return sb.String()
}

// ParseRecord is the inverse of the escaping applied by the formatter: it
// splits one CSV record back into its fields, honoring quoted fields and
// doubled quotes. A single trailing line terminator is tolerated; line
// breaks inside quoted fields are preserved.
func ParseRecord(record string) ([]string, error) {
	record = strings.TrimSuffix(record, "\n")
	record = strings.TrimSuffix(record, "\r")

	var fields []string
	var sb strings.Builder
	i := 0
	for {
		sb.Reset()
		if i < len(record) && record[i] == '"' {
			i++
			closed := false
			for i < len(record) {
				if record[i] == '"' {
					if i+1 < len(record) && record[i+1] == '"' {
						sb.WriteByte('"')
						i += 2
						continue
					}
					i++
					closed = true
					break
				}
				sb.WriteByte(record[i])
				i++
			}
			if !closed {
				return nil, ErrUnterminatedQuote
			}
			if i < len(record) && record[i] != ',' {
				return nil, ErrMalformedRecord
			}
		} else {
			for i < len(record) && record[i] != ',' {
				if record[i] == '"' {
					return nil, ErrMalformedRecord
				}
				sb.WriteByte(record[i])
				i++
			}
		}
		fields = append(fields, sb.String())
		if i >= len(record) {
			return fields, nil
		}
		i++
	}
}
