package sales_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestImportCustomers_OmiteEncabezadoYDuplicados(t *testing.T) {
	f := newFixture()
	f.customer(t, "Existente", "(61) 99999-0000")

	csv := "nome;telefone;email;cidade;estado\n" +
		"Ana Lima;(61) 99831-1920;ana@mail.com;Brasília;df\n" +
		"Duplicado;61999990000;;;\n" +
		"Bruno;(11) 98765-4321;;São Paulo;SP\n"

	res, err := f.customers.ImportCustomers(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 1, res.Duplicates)
	assert.Empty(t, res.Failed)

	var ana bool
	for _, c := range f.store.Customers {
		if c.PhoneDigits == "61998311920" {
			ana = true
			assert.Equal(t, "Brasília", c.City)
			assert.Equal(t, "DF", c.State)
		}
	}
	assert.True(t, ana)
}

func TestImportCustomers_FilasInvalidasNoDetienen(t *testing.T) {
	f := newFixture()
	csv := "Sem Telefone;;;;\n" +
		";61998311920;;;\n" +
		"Carla;(61) 98888-7777\n"

	res, err := f.customers.ImportCustomers(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	require.Len(t, res.Failed, 2)
	assert.Equal(t, 1, res.Failed[0].Line)
	assert.Equal(t, 2, res.Failed[1].Line)
}

func TestImportCustomers_Windows1252(t *testing.T) {
	f := newFixture()
	raw, err := charmap.Windows1252.NewEncoder().Bytes([]byte("João Conceição;(61) 98888-7777;;Goiânia;GO\n"))
	require.NoError(t, err)

	res, err := f.customers.ImportCustomers(context.Background(), bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, 1, res.Created)
	for _, c := range f.store.Customers {
		assert.Equal(t, "João Conceição", c.Name)
		assert.Equal(t, "Goiânia", c.City)
	}
}
