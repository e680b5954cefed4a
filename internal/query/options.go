package query

// RoleOption is a selectable role and the group it is listed under.
type RoleOption struct {
	Group string `json:"group"`
	Name  string `json:"name"`
}

// Options is the catalogue of values offered for each filter dimension.
type Options struct {
	Roles      []RoleOption `json:"roles"`
	Experience []string     `json:"experience"`
	Location   []string     `json:"location"`
	Salary     []string     `json:"salary"`
}

// FilterOptions returns the catalogue shown to users when picking filters.
func FilterOptions() Options {
	return Options{
		Roles: []RoleOption{
			{Group: "engineering", Name: "frontend"},
			{Group: "engineering", Name: "backend"},
			{Group: "engineering", Name: "fullstack"},
			{Group: "engineering", Name: "android"},
			{Group: "engineering", Name: "ios"},
			{Group: "design", Name: "designer"},
			{Group: "design", Name: "design manager"},
			{Group: "design", Name: "graphic designer"},
			{Group: "product", Name: "product manager"},
		},
		Experience: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"},
		Location:   []string{"remote", "hybrid", "in-office"},
		Salary:     []string{"0L", "10L", "20L", "30L", "40L", "50L", "60L", "70L"},
	}
}
