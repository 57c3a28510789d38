package form

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realty/internal/participant/models"
	dErrors "realty/pkg/domain-errors"
)

func newDebugForm() (*Form, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(logger), &buf
}

func fillLawyer(t *testing.T, f *Form) {
	t.Helper()
	require.NoError(t, f.SetUserType("lawyer"))
	for name, value := range map[string]string{
		"name": "Ana", "cpf": "123.456.789-09", "rg": "12.345.678-9",
		"address": "Rua Direita, 10", "phone": "11 99999-0000", "email": "ana@example.com",
		"oabNumber": "12345", "oabState": "SP",
	} {
		require.NoError(t, f.SetField(name, value))
	}
}

func TestSelectors(t *testing.T) {
	f, _ := newDebugForm()

	require.NoError(t, f.SetUserType("realtor"))
	require.NoError(t, f.SetDocumentType("creci"))
	assert.Equal(t, models.UserTypeRealtor, f.Record().UserType)
	assert.Equal(t, models.DocumentCRECI, f.Record().DocumentType)

	assert.True(t, dErrors.HasCode(f.SetUserType("admin"), dErrors.CodeValidation))
	assert.True(t, dErrors.HasCode(f.SetDocumentType("passport"), dErrors.CodeValidation))
	assert.Equal(t, models.UserTypeRealtor, f.Record().UserType, "rejected value must not replace the selection")
}

func TestSetField(t *testing.T) {
	f, logs := newDebugForm()

	require.NoError(t, f.SetField("cpf", "123.456.789-09"))
	assert.Equal(t, "123.456.789-09", f.Record().CPF)
	assert.Contains(t, logs.String(), "participant field updated")
	assert.Contains(t, logs.String(), "field=cpf")
	assert.Contains(t, logs.String(), "value=***.***.***-09")
	assert.NotContains(t, logs.String(), "123.456")

	err := f.SetField("salary", "1000")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestFieldsFollowUserType(t *testing.T) {
	f, _ := newDebugForm()
	assert.Len(t, f.Fields(), 6)

	require.NoError(t, f.SetUserType("realtor"))
	assert.Equal(t, "creciNumber", f.Fields()[6].Name)

	require.NoError(t, f.SetUserType("lawyer"))
	assert.Len(t, f.Fields(), 8)
}

func TestMerge(t *testing.T) {
	f, logs := newDebugForm()
	require.NoError(t, f.SetField("name", "typed by hand"))

	applied := f.Merge(map[string]string{
		"name":       "ANA MARIA",
		"cpf":        "123.456.789-09",
		"birthPlace": "São Paulo",
	})

	assert.Equal(t, []string{"cpf", "name"}, applied)
	assert.Equal(t, "ANA MARIA", f.Record().Name)
	assert.Equal(t, "123.456.789-09", f.Record().CPF)
	assert.Contains(t, logs.String(), "ignoring extracted field")
}

func TestBuild(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("complete lawyer", func(t *testing.T) {
		f, _ := newDebugForm()
		fillLawyer(t, f)

		p, err := f.Build(now)

		require.NoError(t, err)
		assert.NotEqual(t, [16]byte{}, [16]byte(p.ID))
		assert.Equal(t, models.Lawyer{OABNumber: "12345", OABState: "SP"}, p.Role)
	})

	t.Run("each build gets a new id", func(t *testing.T) {
		f, _ := newDebugForm()
		fillLawyer(t, f)

		a, err := f.Build(now)
		require.NoError(t, err)
		b, err := f.Build(now)
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("empty form", func(t *testing.T) {
		f, _ := newDebugForm()
		_, err := f.Build(now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestConcurrentUpdates(t *testing.T) {
	f := New(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = f.SetField("phone", "11 90000-0000")
		}()
		go func() {
			defer wg.Done()
			f.Merge(map[string]string{"email": "x@example.com"})
		}()
	}
	wg.Wait()

	assert.Equal(t, "11 90000-0000", f.Record().Phone)
	assert.Equal(t, "x@example.com", f.Record().Email)
}
