package models

// Domain models matching the database schema in db/migrations/0001_init.sql

// Roles stored in the users table and carried on session principals.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the persisted account row. Rows are created by the db_init
// seeding tool; this service only reads them at login time.
type User struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	Email        string `json:"email" db:"email"`
	Role         string `json:"role" db:"role"`
	PasswordHash string `json:"-" db:"password_hash"`
}

// Principal is the authenticated identity attached to a session. It is a
// snapshot of the User taken at login: the password hash is excluded and the
// fields do not change for the lifetime of the session.
type Principal struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the principal carries the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// PrincipalOf derives the session principal from a user row.
func PrincipalOf(u *User) *Principal {
	return &Principal{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

// Session is a server-side session row keyed by the opaque token stored in
// the client's cookie. The principal fields are denormalized into the row so
// resolving a session never touches the users table. Expired rows count as
// anonymous and are swept by the session janitor.
type Session struct {
	Token    string `json:"-" db:"token"`
	UserID   int64  `json:"user_id" db:"user_id"`
	Username string `json:"username" db:"username"`
	Email    string `json:"email" db:"email"`
	Role     string `json:"role" db:"role"`
	Created  int64  `json:"created" db:"created"`
	Expires  int64  `json:"expires" db:"expires"`
}

// Principal rebuilds the principal snapshot stored on the session.
func (s *Session) Principal() *Principal {
	return &Principal{ID: s.UserID, Username: s.Username, Email: s.Email, Role: s.Role}
}

// Application is one submitted job application. Rows are insert-only:
// nothing in the service updates or deletes them. UserID is nil for
// anonymous submissions.
type Application struct {
	ID         int64  `json:"id" db:"id"`
	JobID      string `json:"job_id" db:"job_id"`
	JobTitle   string `json:"job_title" db:"job_title"`
	Name       string `json:"applicant_name" db:"applicant_name"`
	Email      string `json:"applicant_email" db:"applicant_email"`
	ResumePath string `json:"resume_file_path" db:"resume_file_path"`
	UserID     *int64 `json:"user_id,omitempty" db:"user_id"`
	AppliedAt  int64  `json:"applied_at" db:"applied_at"`
}
