// Package all links every module type into the image.
package all

import (
	_ "sensornode-go/services/modules/devices/adxl345"
	_ "sensornode-go/services/modules/devices/dht11"
	_ "sensornode-go/services/modules/devices/hcsr04"
	_ "sensornode-go/services/modules/devices/ky038"
	_ "sensornode-go/services/modules/devices/light"
	_ "sensornode-go/services/modules/devices/voltage"
)
