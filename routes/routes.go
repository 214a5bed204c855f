package routes

// Route names and auth requirements for every page the app serves.
// Everything requires authentication unless marked otherwise.
type Route struct {
	Path         string
	Name         string
	RequiresAuth bool
}

const (
	Login = "/login"
	Home  = "/"
)

var Table = []Route{
	{Path: Login, Name: "login", RequiresAuth: false},
	{Path: Home, Name: "dashboard", RequiresAuth: true},

	{Path: "/members", Name: "members", RequiresAuth: true},
	{Path: "/members/create", Name: "members-create", RequiresAuth: true},
	{Path: "/members/:id", Name: "member-detail", RequiresAuth: true},
	{Path: "/members/:id/edit", Name: "member-edit", RequiresAuth: true},

	{Path: "/parents", Name: "parents", RequiresAuth: true},
	{Path: "/parents/create", Name: "parents-create", RequiresAuth: true},
	{Path: "/parents/:id/edit", Name: "parent-edit", RequiresAuth: true},

	{Path: "/servicebook", Name: "servicebook", RequiresAuth: true},
	{Path: "/inventory", Name: "inventory", RequiresAuth: true},
	{Path: "/inventory/transactions/new", Name: "transaction-new", RequiresAuth: true},
	{Path: "/orders", Name: "orders", RequiresAuth: true},
	{Path: "/qualifications", Name: "qualifications", RequiresAuth: true},
	{Path: "/settings", Name: "settings", RequiresAuth: true},
	{Path: "/profile", Name: "profile", RequiresAuth: true},
}

// RequiresAuth reports whether a path needs a session. Unknown paths
// default to protected.
func RequiresAuth(path string) bool {
	for _, r := range Table {
		if r.Path == path {
			return r.RequiresAuth
		}
	}
	return true
}
