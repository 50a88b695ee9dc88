package profile

// UpsertBioRequest for PUT /profile/me/bio
type UpsertBioRequest struct {
	About   string `json:"about" validate:"omitempty,max=2000"`
	Heading string `json:"heading" validate:"omitempty,max=200"`
}

// UpsertLocationRequest for PUT /profile/me/location
type UpsertLocationRequest struct {
	Address string `json:"address" validate:"omitempty,max=300"`
	Pincode string `json:"pincode" validate:"omitempty,max=12"`
	City    string `json:"city" validate:"omitempty,max=100"`
	State   string `json:"state" validate:"omitempty,max=100"`
	Country string `json:"country" validate:"omitempty,max=100"`
}

// AddSkillRequest for POST /profile/me/skills
type AddSkillRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// AddExperienceRequest for POST /profile/me/experiences
type AddExperienceRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=200"`
	Company     string `json:"company" validate:"omitempty,max=200"`
	Year        int    `json:"year" validate:"omitempty,gte=1900,lte=2100"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

// SetMediaRequest for the avatar/banner/resume endpoints; an empty URL
// clears the field
type SetMediaRequest struct {
	URL string `json:"url" validate:"omitempty,url,max=500"`
}

// SetAltMobileRequest for PUT /profile/me/alt-mobile
type SetAltMobileRequest struct {
	AltMobileNo string `json:"alt_mobile_no" validate:"omitempty,min=7,max=15"`
}
