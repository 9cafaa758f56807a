package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-commerce-user/config"
)

func testConfig() *config.Config {
	return &config.Config{AppName: "commerce", CompanyName: "Loopers Inc.", SupportURL: "https://support.example.com"}
}

func TestRender_AccountSignedUp(t *testing.T) {
	data := NewAccountSignedUpData(testConfig(), "홍길*", "testuser1", "test@example.com",
		WithTime(time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)))

	subject, text, html, err := Render(AccountSignedUp, data)
	require.NoError(t, err)

	assert.Equal(t, "[commerce] 회원가입을 환영합니다", subject)
	assert.Contains(t, text, "홍길*님")
	assert.Contains(t, text, "testuser1")
	assert.Contains(t, text, "01 March 2024, 09:30")
	assert.Contains(t, html, "https://support.example.com")
}

func TestRender_PasswordChangedFallbacks(t *testing.T) {
	data := NewPasswordChangedData(&config.Config{}, "이*", "user2", "u2@example.com")

	subject, text, html, err := Render(PasswordChanged, data)
	require.NoError(t, err)

	assert.Equal(t, "[Loopers] 비밀번호가 변경되었습니다", subject)
	assert.Contains(t, text, "IP: -")
	assert.Contains(t, html, "고객센터로 문의해 주세요")
}

func TestRender_PasswordChangedWithRequestMeta(t *testing.T) {
	data := NewPasswordChangedData(testConfig(), "이*", "user2", "u2@example.com",
		WithIP("203.0.113.7"), WithUserAgent("curl/8.0"))

	_, text, _, err := Render(PasswordChanged, data)
	require.NoError(t, err)
	assert.Contains(t, text, "IP: 203.0.113.7")
	assert.Contains(t, text, "기기: curl/8.0")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", map[string]any{})
	assert.Error(t, err)
}

func TestDefaultFn(t *testing.T) {
	assert.Equal(t, "x", defaultFn("x", ""))
	assert.Equal(t, "x", defaultFn("x", "  "))
	assert.Equal(t, "x", defaultFn("x", nil))
	assert.Equal(t, "x", defaultFn("x", 0))
	assert.Equal(t, "v", defaultFn("x", "v"))
	assert.Equal(t, 3, defaultFn("x", 3))
}

func TestBaseFuncs_OnlyWhatTemplatesUse(t *testing.T) {
	funcs := baseFuncs()
	assert.Len(t, funcs, 1)
	assert.Contains(t, funcs, "default")
}
