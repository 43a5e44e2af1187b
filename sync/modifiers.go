package sync

import (
	"fmt"
	"strings"
	"time"

	"github.com/biter777/countries"
	"github.com/tidwall/gjson"
	"github.com/ttacon/libphonenumber"
)

// DateLayouts names the source date formats accepted by the @date modifier.
var DateLayouts = map[string]string{
	"ddmmyyyy": "02/01/2006",
	"mmddyyyy": "01/02/2006",
	"yyyymmdd": "2006-01-02",
	"rfc3339":  time.RFC3339,
}

func init() {

	// @date:<layout> converts a date string in a named layout to RFC3339
	// e.g. "depositDate|@date:ddmmyyyy"
	gjson.AddModifier("date", func(json, arg string) string {
		res := gjson.Parse(json)
		if !res.Exists() || res.String() == "" {
			return ""
		}
		layout, ok := DateLayouts[strings.ToLower(arg)]
		if !ok {
			return json
		}
		t, err := time.Parse(layout, strings.TrimSpace(res.String()))
		if err != nil {
			// left as is so the mapping reports it as an invalid timestamp
			return json
		}
		return fmt.Sprintf(`"%s"`, t.UTC().Format(time.RFC3339))
	})

	// @countryCode normalises a country name / alpha-2 / alpha-3 value
	// to the lower case alpha-2 code used by call projects.
	gjson.AddModifier("countryCode", func(json, arg string) string {
		res := gjson.Parse(json)
		if !res.Exists() {
			return ""
		}
		c := countries.ByName(res.String()) // will match on Alpha-2 / Alpha-3 / Name
		if countries.Unknown == c || countries.None == c {
			return json
		}
		return fmt.Sprintf(`"%s"`, strings.ToLower(c.Alpha2()))
	})

	// @msisdn[:region] normalises a mobile number to international digits without
	// a leading +. Without a region the number must already include its country code.
	gjson.AddModifier("msisdn", func(json, arg string) string {
		res := gjson.Parse(json)
		if !res.Exists() {
			return ""
		}
		number := strings.TrimSpace(res.String())
		region := strings.ToUpper(arg)
		candidate := number
		if region == "" && !strings.HasPrefix(candidate, "+") {
			candidate = "+" + candidate
		}
		num, err := libphonenumber.Parse(candidate, region)
		if err != nil {
			return json
		}
		formatted := libphonenumber.Format(num, libphonenumber.E164)
		return fmt.Sprintf(`"%s"`, strings.TrimPrefix(formatted, "+"))
	})

}
