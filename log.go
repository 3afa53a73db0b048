package reqbody

import "net/url"

const LogMaskVal = "xxxxxx"

// Mask replaces every value set for key in vals with LogMaskVal.
func Mask(vals url.Values, key string) {
	if _, ok := vals[key]; !ok {
		return
	}

	vals.Set(key, LogMaskVal)
}
