package swagger_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/knadh/koanf/parsers/yaml"

	"github.com/okian/gridiron/internal/adapters/http/swagger"
)

func TestSwaggerHandler(t *testing.T) {
	convey.Convey("Given a mux with the docs routes", t, func() {
		mux := http.NewServeMux()
		swagger.Register(mux)

		convey.Convey("When the OpenAPI document is requested", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yaml", http.NoBody))

			convey.Convey("Then it is valid YAML describing every route", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "application/yaml; charset=utf-8")

				doc, err := yaml.Parser().Unmarshal(w.Body.Bytes())
				convey.So(err, convey.ShouldBeNil)
				paths, ok := doc["paths"].(map[string]any)
				convey.So(ok, convey.ShouldBeTrue)
				for _, p := range []string{"/healthz", "/metrics", "/stats", "/standings", "/standings/{team_id}", "/seasons"} {
					convey.So(paths, convey.ShouldContainKey, p)
				}
			})
		})

		convey.Convey("When the docs page is requested", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api-docs", http.NoBody))

			convey.Convey("Then it points ReDoc at the OpenAPI document", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "text/html; charset=utf-8")
				convey.So(w.Body.String(), convey.ShouldContainSubstring, `spec-url="/openapi.yaml"`)
			})
		})
	})
}
