package model

// InputState holds the current value of every form field. Fields hidden by
// the visibility rules keep whatever the user last entered; they are dropped
// when a Payload is built.
type InputState struct {
	IntegrationPattern    Pattern    `json:"integration_pattern" validate:"required,oneof=Synchronous Asynchronous Event-based"`
	IntegrationComplexity Complexity `json:"integration_complexity,omitempty" validate:"omitempty,oneof=Simple Medium Complex"`
	InfrastructureModel   InfraModel `json:"infrastructure_model,omitempty" validate:"omitempty,oneof=Shared Dedicated"`
	OperationalComplexity Complexity `json:"operational_complexity,omitempty" validate:"omitempty,oneof=Simple Medium Complex"`
	FirstIntegration      bool       `json:"first_integration,omitempty"`
	TPS                   int        `json:"tps,omitempty" validate:"omitempty,min=1,max=50"`
	EventsPerSecond       int        `json:"events_per_second,omitempty" validate:"omitempty,min=1,max=1000"`
	StorageOfferedGB      int        `json:"storage_offered_gb,omitempty" validate:"min=0,max=1000"`
	PayloadKB             int        `json:"payload_kb,omitempty" validate:"omitempty,min=1,max=10000"`
	MappingRequired       bool       `json:"mapping_required,omitempty"`
	NumberOfFields        int        `json:"number_of_fields,omitempty" validate:"omitempty,min=1,max=500"`
	MappingComplexity     Complexity `json:"mapping_complexity,omitempty" validate:"omitempty,oneof=Simple Medium Complex"`
}

// Payload is the request body sent to the cost service. Every key is always
// present; nil pointers encode as null for fields that do not apply.
type Payload struct {
	IntegrationPattern    string  `json:"integration_pattern"`
	IntegrationComplexity *string `json:"integration_complexity"`
	InfrastructureModel   *string `json:"infrastructure_model"`
	OperationalComplexity *string `json:"operational_complexity"`
	FirstIntegration      *bool   `json:"first_integration"`
	TPS                   *int    `json:"tps"`
	EventsPerSecond       *int    `json:"events_per_second"`
	StorageOfferedGB      *int    `json:"storage_offered_gb"`
	PayloadKB             *int    `json:"payload_kb"`
	MappingRequired       bool    `json:"mapping_required"`
	NumberOfFields        *int    `json:"number_of_fields"`
	MappingComplexity     *string `json:"mapping_complexity"`
}
