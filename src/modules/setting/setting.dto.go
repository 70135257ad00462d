package setting

type CreateUpdateDto struct {
	Value string `json:"value" validate:"required" example:"300"`
	Type  string `json:"type" validate:"required,oneof=string number boolean json" example:"number"`
}
