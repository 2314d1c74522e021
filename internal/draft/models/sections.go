package models

// FileAttachment tracks one document or photo through its upload lifecycle.
// LocalPath is set as soon as the user picks a file; RemoteURL and RemoteKey
// arrive only after a successful upload. Local state is authoritative for
// display, remote state for what the marketplace has actually received.
type FileAttachment struct {
	Name      string `json:"name"`
	LocalPath string `json:"localPath"`
	RemoteURL string `json:"remoteUrl"`
	RemoteKey string `json:"remoteKey"`
}

// PendingUpload reports whether the attachment has a local file reference that
// has not been uploaded yet.
func (f FileAttachment) PendingUpload() bool {
	return f.LocalPath != "" && f.RemoteURL == ""
}

// Present reports whether the user has provided a file at all.
func (f FileAttachment) Present() bool {
	return f.LocalPath != "" || f.RemoteURL != ""
}

// DetailsSection is the first wizard screen. All numeric inputs are kept in
// string form exactly as entered; validators parse them.
type DetailsSection struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Bedrooms      string `json:"bedrooms"`
	Bathrooms     string `json:"bathrooms"`
	BusinessType  string `json:"businessType"`
	Floors        string `json:"floors"`
	SquareFootage string `json:"squareFootage"`
}

// PricingSection holds the investment and rental figures.
type PricingSection struct {
	TotalValue  string `json:"totalValue"`
	SharePrice  string `json:"sharePrice"`
	TotalShares string `json:"totalShares"`
	MonthlyRent string `json:"monthlyRent"`
	Currency    string `json:"currency"`
}

// FeaturesSection describes amenities and physical characteristics.
type FeaturesSection struct {
	Amenities     []string `json:"amenities"`
	Furnished     string   `json:"furnished"`
	ParkingSpaces string   `json:"parkingSpaces"`
	YearBuilt     string   `json:"yearBuilt"`
}

// MediaSection holds listing photos.
type MediaSection struct {
	Photos []FileAttachment `json:"photos"`
}

// DocumentsSection holds the legally required paperwork, one slot per kind.
type DocumentsSection struct {
	OwnershipDeed  FileAttachment `json:"ownershipDeed"`
	TaxCertificate FileAttachment `json:"taxCertificate"`
	Insurance      FileAttachment `json:"insurance"`
}

// LegalSection records the owner's consents.
type LegalSection struct {
	TermsAccepted       bool `json:"termsAccepted"`
	OwnershipDeclared   bool `json:"ownershipDeclared"`
	InformationAccurate bool `json:"informationAccurate"`
}

// PurposeSection captures what the owner wants to do with the property.
// Only the residential flow has this screen.
type PurposeSection struct {
	ListingPurpose string `json:"listingPurpose"`
	AvailableFrom  string `json:"availableFrom"`
}

// Listing purposes accepted by the purpose section.
const (
	PurposeRent       = "rent"
	PurposeSell       = "sell"
	PurposeFractional = "fractional"
)
