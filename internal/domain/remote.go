package domain

// Remote types are the backend's view of the imported data, fetched during
// reconciliation. IDs and UpdatedAt are backend-issued and opaque.

type RemoteRole struct {
	ID   string
	Name string
}

type RemoteUser struct {
	ID        string
	Slug      string
	Name      string
	Email     string
	UpdatedAt string
	Roles     []RemoteRole
}

type RemotePost struct {
	ID            string
	Slug          string
	Title         string
	Status        string
	UpdatedAt     string
	PrimaryAuthor *RemoteUser
}
