package domain

type ResidenceType string

const (
	ResidenceHosteller  ResidenceType = "HOSTELLER"
	ResidenceDayScholar ResidenceType = "DAY_SCHOLAR"
)

// Student is a read-only record resolved from the campus directory.
// The engine reads these for chain selection and queue scoping but
// never writes them.
type Student struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	DepartmentID string        `json:"department_id"`
	HostelID     string        `json:"hostel_id,omitempty"`
	RoomNumber   string        `json:"room_number,omitempty"`
	MentorID     string        `json:"mentor_id"`
	Residence    ResidenceType `json:"residence"`
}

func (s *Student) DayScholar() bool {
	return s.Residence == ResidenceDayScholar
}

// Approver is a staff/HOD/warden directory record, used for queue
// scoping and notification addressing.
type Approver struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         ActorRole `json:"role"`
	DepartmentID string    `json:"department_id,omitempty"`
	HostelID     string    `json:"hostel_id,omitempty"`
}
