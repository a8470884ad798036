package parser_test

import (
	"testing"

	. "github.com/rymskip/evenframe-sub000/pkg/parser"
	"github.com/rymskip/evenframe-sub000/pkg/schema"
	"github.com/rymskip/evenframe-sub000/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestParseAccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		stmt     string
		expected *schema.AccessDefinition
	}{
		{
			name: "record with jwt",
			stmt: "DEFINE ACCESS account ON DATABASE TYPE RECORD " +
				"SIGNUP (CREATE user SET email = $email, pass = crypto::argon2::generate($pass)) " +
				"SIGNIN (SELECT * FROM user WHERE email = $email AND crypto::argon2::compare(pass, $pass)) " +
				"WITH JWT ALGORITHM HS512 KEY 'secret-key' WITH ISSUER KEY 'issuer-key' " +
				"DURATION FOR TOKEN 15m, FOR SESSION 12h;",
			expected: &schema.AccessDefinition{
				Name:            "account",
				Type:            schema.AccessRecord,
				DatabaseLevel:   true,
				Signup:          utils.Ptr("CREATE user SET email = $email, pass = crypto::argon2::generate($pass)"),
				Signin:          utils.Ptr("SELECT * FROM user WHERE email = $email AND crypto::argon2::compare(pass, $pass)"),
				JWTAlgorithm:    utils.Ptr("HS512"),
				JWTKey:          utils.Ptr("secret-key"),
				IssuerKey:       utils.Ptr("issuer-key"),
				TokenDuration:   utils.Ptr("15m"),
				SessionDuration: utils.Ptr("12h"),
			},
		},
		{
			name: "jwt url without with jwt clause",
			stmt: "DEFINE ACCESS `external` ON NAMESPACE TYPE JWT URL 'https://auth.example.com/jwks.json' " +
				"AUTHENTICATE { IF $auth.role != 'admin' { THROW 'denied' }; RETURN $auth; } DURATION FOR SESSION 1d;",
			expected: &schema.AccessDefinition{
				Name:            "external",
				Type:            schema.AccessJWT,
				Authenticate:    utils.Ptr("{ IF $auth.role != 'admin' { THROW 'denied' }; RETURN $auth; }"),
				SessionDuration: utils.Ptr("1d"),
			},
		},
		{
			name: "jwt key without with jwt clause",
			stmt: "DEFINE ACCESS legacy ON DATABASE TYPE JWT ALGORITHM HS256 KEY 'legacy-key' WITH ISSUER KEY 'issuer';",
			expected: &schema.AccessDefinition{
				Name:          "legacy",
				Type:          schema.AccessJWT,
				DatabaseLevel: true,
			},
		},
		{
			name: "jwt key and url clauses",
			stmt: "DEFINE ACCESS token ON DATABASE TYPE JWT WITH JWT ALGORITHM RS256 URL 'https://id.example.com/keys' " +
				"AUTHENTICATE $token.iss = 'id.example.com' DURATION FOR SESSION 2h;",
			expected: &schema.AccessDefinition{
				Name:            "token",
				Type:            schema.AccessJWT,
				DatabaseLevel:   true,
				JWTAlgorithm:    utils.Ptr("RS256"),
				JWTURL:          utils.Ptr("https://id.example.com/keys"),
				Authenticate:    utils.Ptr("$token.iss = 'id.example.com'"),
				SessionDuration: utils.Ptr("2h"),
			},
		},
		{
			name: "bearer",
			stmt: "DEFINE ACCESS api ON DATABASE TYPE BEARER FOR USER DURATION FOR GRANT 30d, FOR TOKEN 1h, FOR SESSION 12h;",
			expected: &schema.AccessDefinition{
				Name:            "api",
				Type:            schema.AccessBearer,
				DatabaseLevel:   true,
				BearerFor:       utils.Ptr("USER"),
				TokenDuration:   utils.Ptr("1h"),
				SessionDuration: utils.Ptr("12h"),
			},
		},
		{
			name: "bearer at end of statement",
			stmt: "DEFINE ACCESS api ON NAMESPACE TYPE BEARER FOR RECORD;",
			expected: &schema.AccessDefinition{
				Name:      "api",
				Type:      schema.AccessBearer,
				BearerFor: utils.Ptr("RECORD"),
			},
		},
		{
			name: "record without clauses",
			stmt: "DEFINE ACCESS minimal ON NAMESPACE TYPE RECORD;",
			expected: &schema.AccessDefinition{
				Name: "minimal",
				Type: schema.AccessRecord,
			},
		},
		{
			name: "unbalanced signin is dropped",
			stmt: "DEFINE ACCESS broken ON DATABASE TYPE RECORD SIGNIN (SELECT * FROM user WHERE (a = 1);",
			expected: &schema.AccessDefinition{
				Name:          "broken",
				Type:          schema.AccessRecord,
				DatabaseLevel: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			access, ok := ParseAccess(tt.stmt)
			require.True(t, ok)
			require.Equal(t, tt.expected, access)
		})
	}
}

func TestParseAccessRejects(t *testing.T) {
	t.Parallel()

	for _, stmt := range []string{
		"DEFINE ACCESS account ON DATABASE TYPE OAUTH;",
		"DEFINE ACCESS account ON DATABASE;",
		"DEFINE ACCESS",
		"DEFINE TABLE user;",
	} {
		access, ok := ParseAccess(stmt)
		require.False(t, ok, stmt)
		require.Nil(t, access, stmt)
	}
}

func TestParseAccessEmptyAlgorithm(t *testing.T) {
	t.Parallel()

	access, ok := ParseAccess("DEFINE ACCESS a ON DATABASE TYPE RECORD WITH JWT ALGORITHM ")
	require.True(t, ok)
	require.Equal(t, utils.Ptr(""), access.JWTAlgorithm)
}

func TestParseAccessRecordWithoutJWTIgnoresKeys(t *testing.T) {
	t.Parallel()

	access, ok := ParseAccess("DEFINE ACCESS a ON DATABASE TYPE RECORD SIGNIN (SELECT * FROM user WHERE key = 'x') KEY 'ignored';")
	require.True(t, ok)
	require.Nil(t, access.JWTKey)
	require.Equal(t, utils.Ptr("SELECT * FROM user WHERE key = 'x'"), access.Signin)
}
