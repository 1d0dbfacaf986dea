package api

import "github.com/careerconnect/client/api/transport"

// Groups bundles every resource facade over one shared transport client.
type Groups struct {
	Auth          *Auth
	Student       *Student
	Mentor        *Mentor
	Communication *Communication
	Admin         *Admin
}

func NewGroups(t *transport.Client) Groups {
	return Groups{
		Auth:          NewAuth(t),
		Student:       NewStudent(t),
		Mentor:        NewMentor(t),
		Communication: NewCommunication(t),
		Admin:         NewAdmin(t),
	}
}
