package branch

import "github.com/peopledesk/hr-backend-go/internal/pkg/validator"

type CreateBranchRequest struct {
	Name string `json:"branch_name"`
	City string `json:"branch_city"`
}

func (r *CreateBranchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch_name",
			Message: "branch_name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "branch_name",
			Message: "branch_name must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.City) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch_city",
			Message: "branch_city is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
