package design

import (
	. "goa.design/goa/v3/dsl"
)

var _ = API("showroom", func() {
	Title("Kanade Honda Showroom API")
	Description("Backend API for the Kanade Honda digital showroom - customer enquiries and loan estimates")
	Version("1.0.0")
	Server("api", func() {
		Host("localhost", func() {
			URI("http://localhost:8000")
		})
	})
})

// Common error types
var Unauthorized = Type("Unauthorized", func() {
	Description("Unauthorized access")
	Attribute("message", String, "Error message", func() {
		Example("Unauthorized")
	})
})

var NotFound = Type("NotFound", func() {
	Description("Resource not found")
	Attribute("message", String, "Error message", func() {
		Example("Enquiry not found")
	})
})

var BadRequest = Type("BadRequest", func() {
	Description("Bad request")
	Attribute("message", String, "Error message", func() {
		Example("Validation failed")
	})
})

// Health check
var _ = Service("health", func() {
	Description("Health check service")
	Method("check", func() {
		Result(HealthResult)
		HTTP(func() {
			GET("/health")
			Response(StatusOK)
		})
	})
})

var HealthResult = ResultType("HealthResult", func() {
	Attribute("status", String, "Service status", func() {
		Example("healthy")
	})
	Attribute("service", String, "Service name", func() {
		Example("Kanade Honda Showroom API")
	})
})

// Authentication service
var _ = Service("auth", func() {
	Description("Admin authentication service")
	Error("unauthorized", Unauthorized)
	Error("bad_request", BadRequest)

	Method("login", func() {
		Description("Authenticate admin user and return JWT token")
		Payload(LoginPayload)
		Result(LoginResult)
		Error("unauthorized")
		HTTP(func() {
			POST("/api/v1/auth/login")
			Response(StatusOK)
			Response("unauthorized", StatusUnauthorized)
		})
	})

	Method("logout", func() {
		Description("Logout user")
		Security(JWTAuth)
		Payload(TokenPayload)
		HTTP(func() {
			POST("/api/v1/auth/logout")
			Response(StatusOK)
		})
	})

	Method("me", func() {
		Description("Get current user information")
		Security(JWTAuth)
		Payload(TokenPayload)
		Result(UserResult)
		Error("unauthorized")
		HTTP(func() {
			GET("/api/v1/auth/me")
			Response(StatusOK)
			Response("unauthorized", StatusUnauthorized)
		})
	})

	Method("change_password", func() {
		Description("Change the authenticated user's password")
		Security(JWTAuth)
		Payload(ChangePasswordPayload)
		Error("unauthorized")
		Error("bad_request")
		HTTP(func() {
			POST("/api/v1/auth/change-password")
			Response(StatusOK)
			Response("unauthorized", StatusUnauthorized)
			Response("bad_request", StatusBadRequest)
		})
	})
})

// Enquiry lifecycle service
var _ = Service("enquiry", func() {
	Description("Customer enquiry lifecycle: public submission plus staff workflow")
	Error("unauthorized", Unauthorized)
	Error("not_found", NotFound)
	Error("bad_request", BadRequest)

	Method("submit", func() {
		Description("Submit a new customer enquiry (public, rate limited)")
		Payload(SubmitEnquiryPayload)
		Result(SubmitEnquiryResult)
		Error("bad_request")
		HTTP(func() {
			POST("/api/v1/enquiries")
			Response(StatusCreated)
			Response("bad_request", StatusBadRequest)
		})
	})

	Method("list", func() {
		Description("List enquiries with filtering, sorting, pagination and statistics")
		Security(JWTAuth, func() {
			Scope("staff")
		})
		Payload(ListEnquiriesPayload)
		Error("unauthorized")
		HTTP(func() {
			GET("/api/v1/enquiries")
			Param("status")
			Param("limit")
			Param("offset")
			Param("sort_by")
			Param("sort_order")
			Response(StatusOK)
			Response("unauthorized", StatusUnauthorized)
		})
	})

	Method("stats", func() {
		Description("Aggregate per-status enquiry counts")
		Security(JWTAuth, func() {
			Scope("staff")
		})
		Payload(TokenPayload)
		Result(EnquiryStatsResult)
		Error("unauthorized")
		HTTP(func() {
			GET("/api/v1/enquiries/stats")
			Response(StatusOK)
			Response("unauthorized", StatusUnauthorized)
		})
	})

	Method("get", func() {
		Description("Get one enquiry with its audit log, newest first")
		Security(JWTAuth, func() {
			Scope("staff")
		})
		Payload(EnquiryIDPayload)
		Error("not_found")
		Error("unauthorized")
		HTTP(func() {
			GET("/api/v1/enquiries/{id}")
			Response(StatusOK)
			Response("not_found", StatusNotFound)
			Response("unauthorized", StatusUnauthorized)
		})
	})

	Method("update_status", func() {
		Description("Transition an enquiry to a new status with an audit log entry")
		Security(JWTAuth, func() {
			Scope("staff")
		})
		Payload(UpdateStatusPayload)
		Error("not_found")
		Error("bad_request")
		Error("unauthorized")
		HTTP(func() {
			PATCH("/api/v1/enquiries/{id}/status")
			Response(StatusOK)
			Response("not_found", StatusNotFound)
			Response("bad_request", StatusBadRequest)
			Response("unauthorized", StatusUnauthorized)
		})
	})

	Method("delete", func() {
		Description("Delete an enquiry and its logs (admin only)")
		Security(JWTAuth, func() {
			Scope("admin")
		})
		Payload(EnquiryIDPayload)
		Error("not_found")
		Error("unauthorized")
		HTTP(func() {
			DELETE("/api/v1/enquiries/{id}")
			Response(StatusOK)
			Response("not_found", StatusNotFound)
			Response("unauthorized", StatusUnauthorized)
		})
	})

	Method("clear_all", func() {
		Description("Delete every enquiry and log row in one transaction (admin only)")
		Security(JWTAuth, func() {
			Scope("admin")
		})
		Payload(TokenPayload)
		Error("unauthorized")
		HTTP(func() {
			DELETE("/api/v1/enquiries")
			Response(StatusOK)
			Response("unauthorized", StatusUnauthorized)
		})
	})
})

// EMI quote service
var _ = Service("emi", func() {
	Description("Vehicle loan installment estimates")
	Error("bad_request", BadRequest)

	Method("quote", func() {
		Description("Compute the monthly installment and totals for a loan (public, rate limited)")
		Payload(EMIQuotePayload)
		Result(EMIQuoteResult)
		Error("bad_request")
		HTTP(func() {
			POST("/api/v1/emi/quote")
			Response(StatusOK)
			Response("bad_request", StatusBadRequest)
		})
	})
})

// JWT Security
var JWTAuth = JWTSecurity("jwt", func() {
	Description("JWT authentication")
	Scope("admin", "Admin access")
	Scope("staff", "Staff access")
})

// Authentication payloads and results
var LoginPayload = Type("LoginPayload", func() {
	Attribute("username", String, "Username", func() {
		MinLength(3)
		MaxLength(50)
		Example("admin")
	})
	Attribute("password", String, "Password", func() {
		MinLength(6)
		Example("secret123")
	})
	Required("username", "password")
})

var LoginResult = ResultType("LoginResult", func() {
	Attribute("access_token", String, "JWT access token")
	Attribute("token_type", String, "Token type", func() {
		Example("bearer")
	})
	Attribute("user", UserResult, "Authenticated user")
})

var TokenPayload = Type("TokenPayload", func() {
	Token("token", String, "JWT token")
	Required("token")
})

var ChangePasswordPayload = Type("ChangePasswordPayload", func() {
	Token("token", String, "JWT token")
	Attribute("current_password", String, "Current password")
	Attribute("new_password", String, "New password", func() {
		MinLength(6)
	})
	Required("token", "current_password", "new_password")
})

var UserResult = ResultType("UserResult", func() {
	Attribute("id", Int, "User ID")
	Attribute("username", String, "Username")
	Attribute("email", String, "Email address")
	Attribute("full_name", String, "Full name")
	Attribute("is_admin", Boolean, "Admin role")
	Attribute("is_staff", Boolean, "Staff role")
})

// Enquiry payloads and results
var SubmitEnquiryPayload = Type("SubmitEnquiryPayload", func() {
	Attribute("name", String, "Customer name", func() {
		MinLength(2)
		MaxLength(100)
		Example("Omkar Shinde")
	})
	Attribute("email", String, "Email address", func() {
		Format(FormatEmail)
	})
	Attribute("phone", String, "Phone number", func() {
		Pattern(`^\+?[1-9]\d{0,15}$`)
		Example("+919812345678")
	})
	Attribute("city", String, "City", func() {
		MinLength(2)
		MaxLength(50)
		Example("Pune")
	})
	Attribute("vehicle_type", String, "Vehicle type", func() {
		Enum("scooter", "motorcycle", "ev")
	})
	Attribute("message", String, "Free-form message", func() {
		MaxLength(1000)
	})
	Required("name", "email", "phone", "city", "vehicle_type")
})

var SubmitEnquiryResult = ResultType("SubmitEnquiryResult", func() {
	Attribute("id", String, "Enquiry ID")
	Attribute("submitted_at", String, "Submission timestamp")
})

var ListEnquiriesPayload = Type("ListEnquiriesPayload", func() {
	Token("token", String, "JWT token")
	Attribute("status", String, "Status filter", func() {
		Enum("all", "new", "contacted", "converted", "closed")
	})
	Attribute("limit", Int, "Page size", func() {
		Default(50)
		Maximum(200)
	})
	Attribute("offset", Int, "Page offset", func() {
		Default(0)
	})
	Attribute("sort_by", String, "Sort field", func() {
		Enum("submitted_at", "updated_at", "name", "status")
		Default("submitted_at")
	})
	Attribute("sort_order", String, "Sort direction", func() {
		Enum("asc", "desc")
		Default("desc")
	})
	Required("token")
})

var EnquiryIDPayload = Type("EnquiryIDPayload", func() {
	Token("token", String, "JWT token")
	Attribute("id", String, "Enquiry ID")
	Required("token", "id")
})

var UpdateStatusPayload = Type("UpdateStatusPayload", func() {
	Token("token", String, "JWT token")
	Attribute("id", String, "Enquiry ID")
	Attribute("status", String, "New status", func() {
		Enum("new", "contacted", "converted", "closed")
	})
	Attribute("notes", String, "Optional notes", func() {
		MaxLength(500)
	})
	Required("token", "id", "status")
})

var EnquiryStatsResult = ResultType("EnquiryStatsResult", func() {
	Attribute("total", Int64, "Total enquiries")
	Attribute("new", Int64, "New enquiries")
	Attribute("contacted", Int64, "Contacted enquiries")
	Attribute("converted", Int64, "Converted enquiries")
	Attribute("closed", Int64, "Closed enquiries")
})

// EMI payloads and results
var EMIQuotePayload = Type("EMIQuotePayload", func() {
	Attribute("vehicle_price", Float64, "Vehicle price", func() {
		Example(87234)
	})
	Attribute("down_payment", Float64, "Down payment", func() {
		Example(8965)
	})
	Attribute("annual_rate", Float64, "Annual interest rate percent", func() {
		Minimum(5)
		Maximum(20)
		Example(9)
	})
	Attribute("tenure_value", Float64, "Loan tenure in the selected unit")
	Attribute("tenure_unit", String, "Tenure unit", func() {
		Enum("months", "years")
		Default("months")
	})
	Required("vehicle_price", "down_payment", "annual_rate", "tenure_value")
})

var EMIQuoteResult = ResultType("EMIQuoteResult", func() {
	Attribute("vehicle_price", Float64, "Vehicle price")
	Attribute("down_payment", Float64, "Down payment")
	Attribute("loan_amount", Float64, "Financed amount")
	Attribute("annual_rate", Float64, "Annual interest rate percent")
	Attribute("monthly_tenure", Int, "Tenure in months")
	Attribute("emi", Int, "Monthly installment")
	Attribute("total_payment", Float64, "Total amount paid over the tenure")
	Attribute("total_interest", Float64, "Total interest paid")
})
