// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Settings tabs shown on the settings screen.
const (
	SettingsTabInstitute     = "institute"
	SettingsTabNotifications = "notifications"
	SettingsTabAppearance    = "appearance"
	SettingsTabSecurity      = "security"
	SettingsTabFinance       = "finance"
)

// Settings holds the console-wide configuration edited on the settings
// screen. Persisted locally as key/value pairs, one column per field.
type Settings struct {
	InstituteName    string `json:"instituteName"`
	InstituteEmail   string `json:"instituteEmail"`
	InstitutePhone   string `json:"institutePhone"`
	InstituteAddress string `json:"instituteAddress"`
	AcademicYear     string `json:"academicYear"`
	WorkingHours     string `json:"workingHours"`

	EmailNotifications bool `json:"emailNotifications"`
	SMSNotifications   bool `json:"smsNotifications"`
	PushNotifications  bool `json:"pushNotifications"`
	EnrollmentAlerts   bool `json:"enrollmentAlerts"`
	PaymentAlerts      bool `json:"paymentAlerts"`
	AttendanceAlerts   bool `json:"attendanceAlerts"`

	Theme        string `json:"theme"`
	PrimaryColor string `json:"primaryColor"`
	Language     string `json:"language"`

	SessionTimeout string `json:"sessionTimeout"`
	TwoFactorAuth  bool   `json:"twoFactorAuth"`

	Currency          string `json:"currency"`
	LateFeePercentage string `json:"lateFeePercentage"`
	MinimumAttendance string `json:"minimumAttendance"`
	GracePeriod       string `json:"gracePeriod"`
}

// DefaultSettings returns the settings applied on first run.
func DefaultSettings() Settings {
	return Settings{
		InstituteName:      "vspaze Institute",
		InstituteEmail:     "contact@vspaze.com",
		InstitutePhone:     "+91 9876543210",
		InstituteAddress:   "Hyderabad, India",
		AcademicYear:       "2024-2025",
		WorkingHours:       "9:00 AM - 6:00 PM",
		EmailNotifications: true,
		SMSNotifications:   false,
		PushNotifications:  true,
		EnrollmentAlerts:   true,
		PaymentAlerts:      true,
		AttendanceAlerts:   false,
		Theme:              "light",
		PrimaryColor:       "#2563eb",
		Language:           "English",
		SessionTimeout:     "30",
		TwoFactorAuth:      false,
		Currency:           "INR",
		LateFeePercentage:  "5",
		MinimumAttendance:  "75",
		GracePeriod:        "15",
	}
}
