package param

import (
	"encoding/json"
	"net/http"
	"reflect"

	"github.com/gorilla/schema"
	"github.com/shopspring/decimal"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
	decoder.SetAliasTag("json")
	decoder.RegisterConverter(decimal.Decimal{}, func(s string) reflect.Value {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(d)
	})
}

// Binding bind query values or the json body onto v
func Binding(r *http.Request, v interface{}) error {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return decoder.Decode(v, r.URL.Query())
	default:
		defer r.Body.Close()
		return json.NewDecoder(r.Body).Decode(v)
	}
}
