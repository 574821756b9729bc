// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"testing"

	"github.com/momeni/bookings/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTaxID(t *testing.T) {
	assert.True(t, model.IsTaxID("52998224725"))
	assert.True(t, model.IsTaxID("11144477735"))
	assert.True(t, model.IsTaxID(model.NormalizeTaxID("529.982.247-25")))
	assert.False(t, model.IsTaxID("52998224724"))
	assert.False(t, model.IsTaxID("11111111111"))
	assert.False(t, model.IsTaxID("5299822472"))
	assert.False(t, model.IsTaxID("5299822472a"))
}

func TestIsEmail(t *testing.T) {
	assert.True(t, model.IsEmail("ana@example.com"))
	assert.False(t, model.IsEmail("Ana <ana@example.com>"))
	assert.False(t, model.IsEmail("ana.example.com"))
	assert.False(t, model.IsEmail(""))
}

func TestCustomerValidate(t *testing.T) {
	c := &model.Customer{
		Name:  "Ana",
		Email: "ana@example.com",
		Phone: "+5511987654321",
		TaxID: "52998224725",
	}
	assert.Empty(t, c.Validate())

	c.Phone = "12345"
	c.TaxID = "00000000000"
	vs := c.Validate()
	require.Len(t, vs, 2)
	assert.Equal(t, "phone", vs[0].Field)
	assert.Equal(t, "taxId", vs[1].Field)
	assert.ErrorContains(t, vs.Err(), "phone: must have 10 to 15 digits")
}

func TestCustomerPatchKeepsEmail(t *testing.T) {
	c := &model.Customer{Name: "Ana", Email: "ana@example.com"}
	name := "Ana Maria"
	(&model.CustomerPatch{Name: &name}).Apply(c)
	assert.Equal(t, "Ana Maria", c.Name)
	assert.Equal(t, "ana@example.com", c.Email)
}
