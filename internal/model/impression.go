package model

// Device is the device class of an impression.
// Keep these values stable; they are used in API responses and dataset filters.
type Device string

const (
	DeviceMobile  Device = "mobile"
	DeviceDesktop Device = "desktop"
)

// DeviceFromCode maps the numeric device codes used in replay datasets.
// The canonical encoding is 1=mobile, 2=desktop; 0 shows up in older
// generator output and is treated as desktop.
func DeviceFromCode(code int) Device {
	if code == 1 {
		return DeviceMobile
	}
	return DeviceDesktop
}

// Code returns the numeric dataset encoding for the device. It must match
// the encoding the scoring models were trained on.
func (d Device) Code() int {
	if d == DeviceMobile {
		return 1
	}
	return 2
}

// Impression is one row of a replay log: a single bidding opportunity with
// its market-clearing price and the historically observed outcome. Records
// are read-only inputs; the simulation never mutates them.
type Impression struct {
	CampaignID  int
	Hour        int
	Device      Device
	FloorPrice  float64
	MarketPrice float64
	Click       bool
	Conversion  bool
}
