package model

// DemoCredential is a seeded account with its clear-text password, hashed on first load.
type DemoCredential struct {
	User
	Password string
}

func DemoCredentials() []DemoCredential {
	return []DemoCredential{
		{
			User:     User{ID: "1", Name: "Admin User", Email: "admin@kampus.ac.id", Role: RoleAdmin},
			Password: "admin123",
		},
		{
			User:     User{ID: "2", Name: "John Doe", Email: "user@kampus.ac.id", Role: RoleUser},
			Password: "user123",
		},
	}
}
