package compose

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGeneratedDocument(t *testing.T) {
	env := ParseEnv("PROJECT_NAME=shop\nPOSTGRES_USER=user\nPOSTGRES_PASSWORD=password\nPOSTGRES_DB=dbname\n")
	p, err := Validate(context.Background(), "shop", marshal(t, sampleDocument()), env)
	require.NoError(t, err)

	names := p.ServiceNames()
	assert.ElementsMatch(t, []string{"fastapi", "postgresql"}, names)
}

func TestValidateRejectsUnknownKey(t *testing.T) {
	doc := sampleDocument()
	doc.Services[1].Service.Extra = Map{{"bogus_key", Scalar("x")}}

	_, err := Validate(context.Background(), "shop", marshal(t, doc), nil)
	assert.ErrorIs(t, err, ErrInvalidCompose)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := Validate(context.Background(), "shop", []byte("- just\n- a list\n"), nil)
	assert.ErrorIs(t, err, ErrInvalidYAML)

	_, err = Validate(context.Background(), "shop", []byte(""), nil)
	assert.ErrorIs(t, err, ErrInvalidYAML)
}

func TestParseEnv(t *testing.T) {
	env := ParseEnv("# comment\nA=1\n\nB=x=y\r\nbroken\n")
	assert.Equal(t, map[string]string{"A": "1", "B": "x=y"}, env)
}
