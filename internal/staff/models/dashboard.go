package models

// AppointmentSummary is the fixed-shape per-status count widget.
type AppointmentSummary struct {
	Total          int `json:"total"`
	Pending        int `json:"pending"`
	Confirmed      int `json:"confirmed"`
	InConsultation int `json:"in_consultation"`
	Completed      int `json:"completed"`
	Cancelled      int `json:"cancelled"`
	NoShow         int `json:"no_show"`
}

// PatientSummary counts patient records by sex.
type PatientSummary struct {
	Total  int `json:"total"`
	Male   int `json:"male"`
	Female int `json:"female"`
}

// ChannelSummary counts appointments by intake channel.
type ChannelSummary struct {
	Online int `json:"online"`
	WalkIn int `json:"walkin"`
}

// DashboardData is the aggregate pushed to staff dashboard clients.
type DashboardData struct {
	Appointments AppointmentSummary `json:"appointments"`
	Patients     PatientSummary     `json:"patients"`
	Channels     ChannelSummary     `json:"channels"`
	Error        string             `json:"error,omitempty"`
}
