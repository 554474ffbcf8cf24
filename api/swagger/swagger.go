package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Timetable Solver API",
        "description": "Scheduling engine host: solve, reoptimize, validate, and recommend over a university timetable, plus timetable export.",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "Ready"
                    }
                }
            }
        },
        "/solve": {
            "post": {
                "summary": "Run the timetable solver",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/reoptimize": {
            "post": {
                "summary": "Re-solve with locked assignments",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/validate": {
            "post": {
                "summary": "Audit an assignment set",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/recommendations": {
            "post": {
                "summary": "Rank candidate placements",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
