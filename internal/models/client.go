package models

type Client struct {
	Document

	UserID  string `json:"user_id" firestore:"userId"`
	Name    string `json:"name" firestore:"name"`
	Email   string `json:"email" firestore:"email"`
	Phone   string `json:"phone,omitempty" firestore:"phone"`
	Company string `json:"company,omitempty" firestore:"company"`
	Address string `json:"address,omitempty" firestore:"address"`
	Notes   string `json:"notes,omitempty" firestore:"notes"`
}

// BusinessProfile is owned by exactly one user and carries the issuer details
// printed on invoices.
type BusinessProfile struct {
	Document

	UserID       string `json:"user_id" firestore:"userId"`
	BusinessName string `json:"business_name" firestore:"businessName"`
	Email        string `json:"email" firestore:"email"`
	Phone        string `json:"phone,omitempty" firestore:"phone"`
	Address      string `json:"address,omitempty" firestore:"address"`
	TaxNumber    string `json:"tax_number,omitempty" firestore:"taxNumber"`
	LogoURL      string `json:"logo_url,omitempty" firestore:"logoUrl"`
	ImageURL     string `json:"image_url,omitempty" firestore:"imageUrl"`
	Currency     string `json:"currency" firestore:"currency"`
}
