package domain

// NotificationKind classifies an in-app notification record.
type NotificationKind string

const (
	KindNewApplication    NotificationKind = "new_application"
	KindApplicationUpdate NotificationKind = "application_update"
)

// DeviceType identifies the platform a device token belongs to.
type DeviceType string

const (
	DeviceAndroid DeviceType = "android"
	DeviceIOS     DeviceType = "ios"
	DeviceWeb     DeviceType = "web"
)

// ParseDeviceType validates a raw device type, defaulting to android when empty.
func ParseDeviceType(s string) (DeviceType, bool) {
	if s == "" {
		return DeviceAndroid, true
	}
	switch DeviceType(s) {
	case DeviceAndroid, DeviceIOS, DeviceWeb:
		return DeviceType(s), true
	}
	return "", false
}
