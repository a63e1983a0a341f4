package user

// Role separates the admin view (union of every owner's collection,
// read-only) from the per-user view.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	FullName    string `json:"fullName"`
	Role        Role   `json:"role"`
	Position    string `json:"position"`
	AvatarColor string `json:"avatarColor"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// roster is the fixed account list. Accounts are not created or edited
// at runtime; login is a selection, not authentication.
var roster = []User{
	{ID: "u1", Username: "admin", FullName: "Lãnh Đạo Đơn Vị", Role: RoleAdmin, Position: "Chủ tịch", AvatarColor: "bg-indigo-600"},
	{ID: "u2", Username: "kyduyen", FullName: "Nguyễn Thái Ngọc Kỳ Duyên", Role: RoleUser, Position: "Phó CVP HĐND và UBND", AvatarColor: "bg-blue-500"},
	{ID: "u3", Username: "vananh", FullName: "Trần Thị Vân Anh", Role: RoleUser, Position: "Chuyên viên tổng hợp", AvatarColor: "bg-emerald-500"},
}

func All() []User {
	out := make([]User, len(roster))
	copy(out, roster)
	return out
}

func ByID(id string) (*User, bool) {
	for i := range roster {
		if roster[i].ID == id {
			u := roster[i]
			return &u, true
		}
	}
	return nil, false
}

func ByUsername(name string) (*User, bool) {
	for i := range roster {
		if roster[i].Username == name {
			u := roster[i]
			return &u, true
		}
	}
	return nil, false
}
