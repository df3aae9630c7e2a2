package config

import (
	"sensornode-go/errcode"

	"github.com/andreyvit/tinyjson"
)

// Embedded provisioning profiles, keyed by board name. Each profile is a
// JSON object of config name (or number, as accepted by ParseKey) to value.
// Values may be strings, numbers or booleans.

// Pico dev board: light sensor on ADC0, radio gateway on UART0.
const cfgPico = `{
  "module1": "4,26",
  "sensor_update_interval": 10000
}`

// Pico with ADXL345 on I2C0, INT1 routed to the wake line (rising edge).
const cfgPicoMotion = `{
  "module1": "5,10,20,7,3,0,8",
  "power_interrupt_options": 7,
  "power_sleep_duration": 0
}`

var embeddedProfiles = map[string][]byte{
	"pico":        []byte(cfgPico),
	"pico_motion": []byte(cfgPicoMotion),
}

// ProfileLookup allows overriding how profiles are resolved.
var ProfileLookup = func(board string) ([]byte, bool) {
	b, ok := embeddedProfiles[board]
	return b, ok
}

// ApplyProfile applies the JSON profile to r. r is left untouched if the
// document is malformed or any entry fails.
func ApplyProfile(r *Record, raw []byte) (err error) {
	if len(raw) == 0 {
		return nil
	}
	tmp := *r
	defer func() {
		if p := recover(); p != nil {
			msg, _ := p.(string)
			err = errcode.New(errcode.InvalidValue, "config.profile", msg)
		}
	}()

	doc := tinyjson.Raw(raw)
	for key := doc.StartObject(); key != nil; key = doc.ContinueObject() {
		k, kerr := ParseKey(key.Str())
		if kerr != nil {
			return kerr
		}
		if _, serr := tmp.setText(k, doc.Str()); serr != nil {
			return errcode.Wrap(errcode.InvalidValue, "config.profile", serr)
		}
	}
	doc.EnsureEOF()

	*r = tmp
	return nil
}
