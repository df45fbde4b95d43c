package patient

import "context"

// CreateRequest carries the full set of fields needed to admit a patient.
// Constraint tags mirror the stored invariants: age strictly inside (0, 120),
// positive height and weight, gender drawn from the enumeration.
type CreateRequest struct {
	Name         string  `json:"name" validate:"required"`
	City         string  `json:"city" validate:"required"`
	Age          int     `json:"age" validate:"required,gt=0,lt=120"`
	Gender       Gender  `json:"gender" validate:"required,oneof=male female others"`
	Height       float64 `json:"height" validate:"required,gt=0"`
	Weight       float64 `json:"weight" validate:"required,gt=0"`
	Diagnosis    *string `json:"diagnosis"`
	Prescription *string `json:"prescription"`
}

// UpdateRequest is a partial patch: nil fields are left untouched, present
// fields are revalidated against the same constraints as CreateRequest.
type UpdateRequest struct {
	Name         *string  `json:"name" validate:"omitempty,min=1"`
	City         *string  `json:"city" validate:"omitempty,min=1"`
	Age          *int     `json:"age" validate:"omitempty,gt=0,lt=120"`
	Gender       *Gender  `json:"gender" validate:"omitempty,oneof=male female others"`
	Height       *float64 `json:"height" validate:"omitempty,gt=0"`
	Weight       *float64 `json:"weight" validate:"omitempty,gt=0"`
	Diagnosis    *string  `json:"diagnosis"`
	Prescription *string  `json:"prescription"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Patient, error) {
	p := &Patient{
		Name:         req.Name,
		City:         req.City,
		Age:          req.Age,
		Gender:       req.Gender,
		Height:       req.Height,
		Weight:       req.Weight,
		Diagnosis:    req.Diagnosis,
		Prescription: req.Prescription,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]*Patient, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

// Update loads the record, applies only the fields present in the patch, and
// persists the result. Omitted fields keep their prior values.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.City != nil {
		p.City = *req.City
	}
	if req.Age != nil {
		p.Age = *req.Age
	}
	if req.Gender != nil {
		p.Gender = *req.Gender
	}
	if req.Height != nil {
		p.Height = *req.Height
	}
	if req.Weight != nil {
		p.Weight = *req.Weight
	}
	if req.Diagnosis != nil {
		p.Diagnosis = req.Diagnosis
	}
	if req.Prescription != nil {
		p.Prescription = req.Prescription
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
