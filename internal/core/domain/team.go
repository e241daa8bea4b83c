package domain

// TeamMember is a person shown on the public team page. Order controls the
// display position, lowest first.
type TeamMember struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Photo    string `json:"photo"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Facebook string `json:"facebook"`
	Twitter  string `json:"twitter"`
	LinkedIn string `json:"linkedin"`
	Order    int    `json:"order"`
	Active   bool   `json:"active"`
}
