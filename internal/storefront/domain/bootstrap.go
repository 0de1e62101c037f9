package domain

type BootstrapData struct {
	AdminEmail    string
	AdminName     string
	AdminPassword string
}
