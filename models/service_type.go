package models

// ServiceType is the kind of window treatment work being requested.
// The same enumeration is used by public leads and internal jobs.
type ServiceType string

const (
	ServiceGeneral    ServiceType = "general"
	ServiceBlinds     ServiceType = "blinds"
	ServiceShades     ServiceType = "shades"
	ServiceMotorized  ServiceType = "motorized"
	ServiceCommercial ServiceType = "commercial"
	ServiceCustom     ServiceType = "custom"
)

// ValidServiceType checks whether the value is one of the known services
func ValidServiceType(s ServiceType) bool {
	switch s {
	case ServiceGeneral, ServiceBlinds, ServiceShades, ServiceMotorized, ServiceCommercial, ServiceCustom:
		return true
	default:
		return false
	}
}
