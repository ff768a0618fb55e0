package validation

// PostInput is the payload for creating a post or a comment.
type PostInput struct {
	Text   string `json:"text"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func ValidatePostInput(in PostInput) (map[string]string, bool) {
	errs := map[string]string{}

	if isEmpty(in.Text) {
		errs["text"] = "Text field is required"
	}
	if isEmpty(in.Name) {
		errs["name"] = "Name field is required"
	}
	if isEmpty(in.Avatar) {
		errs["avatar"] = "Avatar field is required"
	}

	return errs, len(errs) == 0
}
