// Package payload builds the cost service request from the input model.
package payload

import (
	"github.com/finopsmind/costmeter/internal/form"
	"github.com/finopsmind/costmeter/internal/model"
)

// Build maps s onto the request schema. Every key is present; fields hidden
// by the visibility rules are nil regardless of what s still holds for them.
func Build(s model.InputState) model.Payload {
	p := model.Payload{
		IntegrationPattern: s.IntegrationPattern.String(),
		MappingRequired:    s.MappingRequired,
	}

	if form.Visible(s, form.FieldIntegrationComplexity) {
		p.IntegrationComplexity = str(s.IntegrationComplexity.String())
	}
	if form.Visible(s, form.FieldInfrastructureModel) {
		p.InfrastructureModel = str(s.InfrastructureModel.String())
	}
	if form.Visible(s, form.FieldOperationalComplexity) {
		p.OperationalComplexity = str(s.OperationalComplexity.String())
	}
	if form.Visible(s, form.FieldFirstIntegration) {
		p.FirstIntegration = boolean(s.FirstIntegration)
	}
	if form.Visible(s, form.FieldTPS) {
		p.TPS = num(s.TPS)
	}
	if form.Visible(s, form.FieldEventsPerSecond) {
		p.EventsPerSecond = num(s.EventsPerSecond)
	}
	if form.Visible(s, form.FieldStorageOfferedGB) {
		p.StorageOfferedGB = num(s.StorageOfferedGB)
	}
	if form.Visible(s, form.FieldPayloadKB) {
		p.PayloadKB = num(s.PayloadKB)
	}
	if form.Visible(s, form.FieldNumberOfFields) {
		p.NumberOfFields = num(s.NumberOfFields)
	}
	if form.Visible(s, form.FieldMappingComplexity) {
		p.MappingComplexity = str(s.MappingComplexity.String())
	}

	return p
}

func str(v string) *string { return &v }

func num(v int) *int { return &v }

func boolean(v bool) *bool { return &v }
