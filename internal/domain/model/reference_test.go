package model_test

import (
	"testing"
	"time"

	model "github.com/hrkey/refcore/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func validRecord() *model.ValidatedReference {
	return &model.ValidatedReference{
		ID:               "ref-1",
		OwnerID:          "candidate-1",
		ReferrerEmail:    "peer@example.com",
		StandardizedText: "Consistently shipped quality work across two quarters.",
		StructuredDimensions: map[string]model.Dimension{
			"code_quality": {Rating: 4, Confidence: 0.8, Normalized: 0.8},
			"test_coverage": {Rating: 5, Confidence: 0.6, Normalized: 1.0},
		},
		ConsistencyScore: 1.0,
		FraudScore:       10,
		Confidence:       0.85,
		ValidationStatus: model.StatusApproved,
		Flags:            nil,
		Metadata: model.Metadata{
			Version:    model.SchemaVersion,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			TextLength: 54,
			KPICount:   2,
		},
	}
}

func TestValidationStatus(t *testing.T) {
	Convey("Given the validation status enum", t, func() {
		Convey("Then all defined statuses should be valid", func() {
			for _, s := range []model.ValidationStatus{
				model.StatusRejectedHighFraudRisk,
				model.StatusRejectedCriticalIssues,
				model.StatusRejectedInconsistent,
				model.StatusApprovedWithWarnings,
				model.StatusApproved,
			} {
				So(s.Valid(), ShouldBeTrue)
			}
		})

		Convey("Then unknown statuses should be invalid", func() {
			So(model.ValidationStatus("PENDING").Valid(), ShouldBeFalse)
			So(model.ValidationStatus("").Valid(), ShouldBeFalse)
		})

		Convey("Then only approval statuses should report approved", func() {
			So(model.StatusApproved.IsApproved(), ShouldBeTrue)
			So(model.StatusApprovedWithWarnings.IsApproved(), ShouldBeTrue)
			So(model.StatusRejectedHighFraudRisk.IsApproved(), ShouldBeFalse)
			So(model.StatusRejectedCriticalIssues.IsApproved(), ShouldBeFalse)
			So(model.StatusRejectedInconsistent.IsApproved(), ShouldBeFalse)
		})
	})
}

func TestSubmissionValidate(t *testing.T) {
	Convey("Given a reference submission", t, func() {
		sub := model.ReferenceSubmission{
			Summary:       "Great collaborator, delivered the migration on time.",
			KPIRatings:    map[string]float64{"code_quality": 4},
			OwnerID:       "candidate-1",
			ReferrerEmail: "peer@example.com",
		}

		Convey("Then a complete submission should validate", func() {
			So(sub.Validate(), ShouldBeNil)
		})

		Convey("When the summary is blank", func() {
			bad := sub
			bad.Summary = "   "
			So(bad.Validate(), ShouldNotBeNil)
		})

		Convey("When no ratings are present", func() {
			bad := sub
			bad.KPIRatings = nil
			So(bad.Validate(), ShouldNotBeNil)
		})

		Convey("When a rating is out of range", func() {
			bad := sub
			bad.KPIRatings = map[string]float64{"code_quality": 7}
			So(bad.Validate(), ShouldNotBeNil)
		})

		Convey("When owner or referrer is missing", func() {
			bad := sub
			bad.OwnerID = ""
			So(bad.Validate(), ShouldNotBeNil)

			bad = sub
			bad.ReferrerEmail = ""
			So(bad.Validate(), ShouldNotBeNil)
		})
	})
}

func TestValidatedReferenceValidate(t *testing.T) {
	Convey("Given a well-formed validated reference", t, func() {
		rec := validRecord()

		Convey("Then it should pass schema validation", func() {
			So(rec.Validate(), ShouldBeNil)
		})

		Convey("When normalized disagrees with rating/5", func() {
			rec.StructuredDimensions["code_quality"] = model.Dimension{Rating: 4, Confidence: 0.8, Normalized: 0.5}
			So(rec.Validate(), ShouldNotBeNil)
		})

		Convey("When the fraud score leaves [0,100]", func() {
			rec.FraudScore = 101
			So(rec.Validate(), ShouldNotBeNil)
			rec.FraudScore = -1
			So(rec.Validate(), ShouldNotBeNil)
		})

		Convey("When consistency or confidence leave [0,1]", func() {
			rec.ConsistencyScore = 1.2
			So(rec.Validate(), ShouldNotBeNil)

			rec = validRecord()
			rec.Confidence = -0.1
			So(rec.Validate(), ShouldNotBeNil)
		})

		Convey("When the status is unknown", func() {
			rec.ValidationStatus = "MAYBE"
			So(rec.Validate(), ShouldNotBeNil)
		})

		Convey("When a flag has an unknown severity", func() {
			rec.Flags = []model.Flag{{Type: "odd", Severity: "fatal", Message: "x"}}
			So(rec.Validate(), ShouldNotBeNil)
		})

		Convey("When text is short without a critical flag", func() {
			rec.StandardizedText = "too short"
			So(rec.Validate(), ShouldNotBeNil)
		})

		Convey("When text is short but a critical flag documents it", func() {
			rec.StandardizedText = "too short"
			rec.ValidationStatus = model.StatusRejectedCriticalIssues
			rec.Flags = []model.Flag{{
				Type:     "text_length",
				Severity: model.SeverityCritical,
				Message:  "standardized text below minimum length",
			}}
			So(rec.Validate(), ShouldBeNil)
		})

		Convey("When has_embedding disagrees with the vector", func() {
			rec.Metadata.HasEmbedding = true
			So(rec.Validate(), ShouldNotBeNil)
		})
	})
}

func TestSafeValidate(t *testing.T) {
	Convey("Given the safe validation variant", t, func() {
		Convey("When the record is valid", func() {
			rec := validRecord()
			res := model.SafeValidate(rec)

			Convey("Then it should succeed and echo the record", func() {
				So(res.Success, ShouldBeTrue)
				So(res.Data, ShouldEqual, rec)
				So(res.Errors, ShouldBeEmpty)
			})

			Convey("And safe-validating an already validated record should be idempotent", func() {
				again := model.SafeValidate(res.Data)
				So(again.Success, ShouldBeTrue)
				So(again.Data, ShouldResemble, rec)
			})
		})

		Convey("When the record is invalid", func() {
			rec := validRecord()
			rec.FraudScore = 200
			res := model.SafeValidate(rec)

			Convey("Then it should report errors without panicking", func() {
				So(res.Success, ShouldBeFalse)
				So(res.Data, ShouldBeNil)
				So(len(res.Errors), ShouldEqual, 1)
			})
		})

		Convey("When the record is nil", func() {
			res := model.SafeValidate(nil)
			So(res.Success, ShouldBeFalse)
			So(res.Errors, ShouldNotBeEmpty)
		})
	})
}
