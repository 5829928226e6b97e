package models

type Subject struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	TenantID string `json:"tenantId" db:"tenantId"`
}

type Lesson struct {
	ID        string  `json:"id" db:"id"`
	Title     string  `json:"title" db:"title"`
	Content   *string `json:"content" db:"content"`
	SubjectID string  `json:"subjectId" db:"subjectId"`
	TenantID  string  `json:"tenantId" db:"tenantId"`
}

type Exam struct {
	ID       string `json:"id" db:"id"`
	Title    string `json:"title" db:"title"`
	TenantID string `json:"tenantId" db:"tenantId"`
}

// DashboardStats are the per-tenant counters on the dashboard.
type DashboardStats struct {
	UserCount    int `json:"userCount"`
	SubjectCount int `json:"subjectCount"`
	LessonCount  int `json:"lessonCount"`
}
