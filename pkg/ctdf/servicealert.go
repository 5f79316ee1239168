package ctdf

import "time"

type ServiceAlert struct {
	Identifier string `groups:"basic"`

	AlertType ServiceAlertType `groups:"basic"`
	Message   string           `groups:"basic"`

	Date string `groups:"basic"`
	Time string `groups:"basic"`

	CreationDateTime time.Time `groups:"detailed"`
}

type ServiceAlertType string

const (
	ServiceAlertTypeDelay       ServiceAlertType = "delay"
	ServiceAlertTypeMaintenance ServiceAlertType = "maintenance"
	ServiceAlertTypeCrowd       ServiceAlertType = "crowd"
)

func (t ServiceAlertType) IsValid() bool {
	return t == ServiceAlertTypeDelay || t == ServiceAlertTypeMaintenance || t == ServiceAlertTypeCrowd
}
