package store

type PersonRow struct {
	ID                  string
	Name                string
	Email               string
	Department          string
	WeeklyCapacityHours float64
	Active              bool
}

type OrganizationRow struct {
	ID   string
	Name string
}

type ClientRow struct {
	ID       string
	Name     string
	Industry string
}

// CoWorkPair is an unordered pair of people (UserA < UserB) who logged time on
// the same briefs.
type CoWorkPair struct {
	UserA        string
	UserB        string
	SharedBriefs int64
}

type UserHours struct {
	UserID string
	Name   string
	Hours  float64
}

// Contribution is the time one person logged against one brief.
type Contribution struct {
	UserID  string
	BriefID string
	Hours   float64
}

// AssignmentCount is the number of a client's briefs assigned to one person.
type AssignmentCount struct {
	UserID   string
	ClientID string
	Briefs   int64
}

type AssigneeCount struct {
	UserID string
	Name   string
	Briefs int64
}

type UserSkillRow struct {
	UserID string
	Skill  string
	Level  int64
}
