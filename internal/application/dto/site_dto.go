package dto

// SiteResponse datos estáticos del sitio y del panel (GET /api/site).
type SiteResponse struct {
	AdminHeader        string `json:"admin_header"`
	AdminTitle         string `json:"admin_title"`
	AdminIndexTitle    string `json:"admin_index_title"`
	CompanyName        string `json:"company_name"`
	Slogan             string `json:"slogan"`
	WhatsApp           string `json:"whatsapp"`
	ContactEmail       string `json:"contact_email"`
	Domain             string `json:"domain"`
	OrganizationSchema string `json:"organization_schema"`
}
