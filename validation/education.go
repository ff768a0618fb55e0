package validation

type EducationInput struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func ValidateEducationInput(in EducationInput) (map[string]string, bool) {
	errs := map[string]string{}

	if isEmpty(in.School) {
		errs["school"] = "School field is required"
	}
	if isEmpty(in.Degree) {
		errs["degree"] = "Degree field is required"
	}
	if isEmpty(in.FieldOfStudy) {
		errs["fieldofstudy"] = "Field of study field is required"
	}
	if isEmpty(in.From) {
		errs["from"] = "From date field is required"
	}

	return errs, len(errs) == 0
}
