package api

import (
	"errors"
	"io"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestOpErrors(t *testing.T) {
	Convey("Given op error helpers", t, func() {
		Convey("When wrapping with a kind", func() {
			err := WrapKind("api.post_appraisal", ErrBadRequest, io.EOF)

			Convey("Then both the kind and the cause match", func() {
				So(errors.Is(err, ErrBadRequest), ShouldBeTrue)
				So(errors.Is(err, io.EOF), ShouldBeTrue)
				So(err.Error(), ShouldEqual, "api.post_appraisal: bad request: EOF")
			})
		})

		Convey("When wrapping without a cause", func() {
			err := WrapKind("api.post_profit", ErrInternal, nil)
			So(errors.Is(err, ErrInternal), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.post_profit: internal error")
		})
	})
}

func TestGetErrorType(t *testing.T) {
	Convey("Given HTTP status codes", t, func() {
		So(getErrorType(500), ShouldEqual, "server_error")
		So(getErrorType(429), ShouldEqual, "rate_limit")
		So(getErrorType(413), ShouldEqual, "too_large")
		So(getErrorType(404), ShouldEqual, "not_found")
		So(getErrorType(400), ShouldEqual, "client_error")
		So(getErrorType(200), ShouldEqual, "unknown")
	})
}
