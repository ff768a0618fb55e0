package validation

// ProfileInput is the composite create-or-update payload. Optional fields
// left absent stay empty here and are never written to the stored profile.
type ProfileInput struct {
	Handle         string `json:"handle"`
	Status         string `json:"status"`
	Skills         string `json:"skills"`
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

func ValidateProfileInput(in ProfileInput) (map[string]string, bool) {
	errs := map[string]string{}

	if isEmpty(in.Handle) {
		errs["handle"] = "Profile handle is required"
	} else if len(in.Handle) < 2 || len(in.Handle) > 40 {
		errs["handle"] = "Handle needs to be between 2 and 40 characters"
	}
	if isEmpty(in.Status) {
		errs["status"] = "Status field is required"
	}
	if isEmpty(in.Skills) {
		errs["skills"] = "Skills field is required"
	}

	return errs, len(errs) == 0
}
