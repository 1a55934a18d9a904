// Package taskflow holds the Swagger document served at /swagger/.
//
// Regenerate with:
//
//	swag init -g internal/taskflow/http/router.go -o api/taskflow --outputTypes go
package taskflow

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/taskflow"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/auth/signup": {
            "post": {
                "tags": [
                    "Auth"
                ],
                "summary": "Create an account",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.SignupRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.AuthResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": [
                    "Auth"
                ],
                "summary": "Sign in",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.AuthResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/auth/logout": {
            "post": {
                "tags": [
                    "Auth"
                ],
                "summary": "Sign out",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.SuccessResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/auth/me": {
            "get": {
                "tags": [
                    "Auth"
                ],
                "summary": "Current user",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.MeResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/auth/2fa/setup": {
            "post": {
                "tags": [
                    "Two-Factor"
                ],
                "summary": "Start 2FA setup",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.TwoFactorSetupResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/auth/2fa/enable": {
            "post": {
                "tags": [
                    "Two-Factor"
                ],
                "summary": "Enable 2FA",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.TwoFactorEnableRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.BackupCodesResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/auth/2fa/disable": {
            "post": {
                "tags": [
                    "Two-Factor"
                ],
                "summary": "Disable 2FA",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.TwoFactorDisableRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.SuccessResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/auth/2fa/verify": {
            "post": {
                "tags": [
                    "Two-Factor"
                ],
                "summary": "Answer the 2FA challenge",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.TwoFactorVerifyRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.SuccessResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/auth/2fa/backup-codes": {
            "post": {
                "tags": [
                    "Two-Factor"
                ],
                "summary": "Regenerate backup codes",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.BackupCodesRegenerateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.BackupCodesResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/invitations/{token}": {
            "get": {
                "tags": [
                    "Invitations"
                ],
                "summary": "Preview an invitation",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "token",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.InvitationPreviewResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/invitations/accept": {
            "post": {
                "tags": [
                    "Invitations"
                ],
                "summary": "Accept an invitation",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.AcceptInvitationRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.AuthResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/businesses/{id}/invitations": {
            "post": {
                "tags": [
                    "Invitations"
                ],
                "summary": "Invite someone to a business",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.InviteRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.InviteResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/businesses": {
            "get": {
                "tags": [
                    "Businesses"
                ],
                "summary": "My businesses",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.BusinessesResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/admin/businesses": {
            "get": {
                "tags": [
                    "Admin"
                ],
                "summary": "All businesses",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.BusinessesResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/businesses/{id}/members": {
            "get": {
                "tags": [
                    "Businesses"
                ],
                "summary": "Team list",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.MembersResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/businesses/{id}/members/{userId}": {
            "patch": {
                "tags": [
                    "Businesses"
                ],
                "summary": "Change a member's role",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "name": "userId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.UpdateMemberRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.SuccessResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Businesses"
                ],
                "summary": "Remove a member",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "name": "userId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.SuccessResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/businesses/{id}/projects": {
            "get": {
                "tags": [
                    "Projects"
                ],
                "summary": "List projects",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ProjectsResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Projects"
                ],
                "summary": "Create a project",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.CreateProjectRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ProjectResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/projects/{id}": {
            "get": {
                "tags": [
                    "Projects"
                ],
                "summary": "Get a project",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ProjectResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "Projects"
                ],
                "summary": "Update a project",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.UpdateProjectRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ProjectResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Projects"
                ],
                "summary": "Delete a project",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.SuccessResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/projects/{id}/tasks": {
            "get": {
                "tags": [
                    "Tasks"
                ],
                "summary": "List tasks",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.TasksResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Tasks"
                ],
                "summary": "Create a task",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.CreateTaskRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.TaskResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/tasks/{id}": {
            "patch": {
                "tags": [
                    "Tasks"
                ],
                "summary": "Update a task",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.UpdateTaskRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.TaskResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Tasks"
                ],
                "summary": "Delete a task",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.SuccessResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/projects/{id}/time-entries": {
            "get": {
                "tags": [
                    "Time"
                ],
                "summary": "List time entries",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.TimeEntriesResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Time"
                ],
                "summary": "Log time",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.LogTimeRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.TimeEntryResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/businesses/{id}/invoices": {
            "get": {
                "tags": [
                    "Invoices"
                ],
                "summary": "List invoices",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.InvoicesResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Invoices"
                ],
                "summary": "Create an invoice",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.CreateInvoiceRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.InvoiceResponse"
                        }
                    },
                    "default": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/livez": {
            "get": {
                "tags": [
                    "Health"
                ],
                "summary": "Liveness probe",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.HealthResponse"
                        }
                    }
                }
            }
        },
        "/readyz": {
            "get": {
                "tags": [
                    "Health"
                ],
                "summary": "Readiness probe",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/taskflowsdk.HealthResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "taskflowsdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "error": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "fields": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                }
            }
        },
        "taskflowsdk.SuccessResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                }
            }
        },
        "taskflowsdk.SignupRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                },
                "confirmPassword": {
                    "type": "string"
                },
                "plan": {
                    "type": "string",
                    "enum": [
                        "free",
                        "pro",
                        "enterprise"
                    ]
                },
                "businessName": {
                    "type": "string"
                }
            },
            "required": [
                "name",
                "email",
                "password",
                "confirmPassword"
            ]
        },
        "taskflowsdk.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            },
            "required": [
                "email",
                "password"
            ]
        },
        "taskflowsdk.User": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                },
                "businessId": {
                    "type": "string"
                },
                "lastLoginAt": {
                    "type": "string"
                }
            }
        },
        "taskflowsdk.Business": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "slug": {
                    "type": "string"
                },
                "plan": {
                    "type": "string"
                },
                "ownerId": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                }
            }
        },
        "taskflowsdk.AuthResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "user": {
                    "$ref": "#/definitions/taskflowsdk.User"
                },
                "business": {
                    "$ref": "#/definitions/taskflowsdk.Business"
                },
                "requiresTwoFactor": {
                    "type": "boolean"
                }
            }
        },
        "taskflowsdk.TwoFactorStatus": {
            "type": "object",
            "properties": {
                "enabled": {
                    "type": "boolean"
                },
                "backupCodesRemaining": {
                    "type": "integer"
                }
            }
        },
        "taskflowsdk.MeResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "user": {
                    "$ref": "#/definitions/taskflowsdk.User"
                },
                "businesses": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/taskflowsdk.Business"
                    }
                },
                "twoFactor": {
                    "$ref": "#/definitions/taskflowsdk.TwoFactorStatus"
                }
            }
        },
        "taskflowsdk.TwoFactorSetupResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "secret": {
                    "type": "string"
                },
                "uri": {
                    "type": "string"
                }
            }
        },
        "taskflowsdk.TwoFactorEnableRequest": {
            "type": "object",
            "properties": {
                "secret": {
                    "type": "string"
                },
                "token": {
                    "type": "string"
                }
            },
            "required": [
                "secret",
                "token"
            ]
        },
        "taskflowsdk.TwoFactorDisableRequest": {
            "type": "object",
            "properties": {
                "token": {
                    "type": "string"
                },
                "isBackupCode": {
                    "type": "boolean"
                }
            },
            "required": [
                "token"
            ]
        },
        "taskflowsdk.TwoFactorVerifyRequest": {
            "type": "object",
            "properties": {
                "userId": {
                    "type": "string"
                },
                "token": {
                    "type": "string"
                },
                "isBackupCode": {
                    "type": "boolean"
                }
            },
            "required": [
                "token"
            ]
        },
        "taskflowsdk.BackupCodesRegenerateRequest": {
            "type": "object",
            "properties": {
                "token": {
                    "type": "string"
                }
            },
            "required": [
                "token"
            ]
        },
        "taskflowsdk.BackupCodesResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "backupCodes": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "taskflowsdk.BusinessesResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "businesses": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/taskflowsdk.Business"
                    }
                }
            }
        },
        "taskflowsdk.Member": {
            "type": "object",
            "properties": {
                "userId": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                },
                "joinedAt": {
                    "type": "string"
                }
            }
        },
        "taskflowsdk.MembersResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "members": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/taskflowsdk.Member"
                    }
                }
            }
        },
        "taskflowsdk.UpdateMemberRequest": {
            "type": "object",
            "properties": {
                "role": {
                    "type": "string",
                    "enum": [
                        "admin",
                        "member"
                    ]
                }
            },
            "required": [
                "role"
            ]
        },
        "taskflowsdk.InviteRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "role": {
                    "type": "string",
                    "enum": [
                        "admin",
                        "member"
                    ]
                }
            },
            "required": [
                "email",
                "role"
            ]
        },
        "taskflowsdk.Invitation": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                },
                "expiresAt": {
                    "type": "string"
                },
                "inviteUrl": {
                    "type": "string"
                }
            }
        },
        "taskflowsdk.InviteResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "invitation": {
                    "$ref": "#/definitions/taskflowsdk.Invitation"
                }
            }
        },
        "taskflowsdk.InvitationPreviewResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "email": {
                    "type": "string"
                },
                "businessName": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                },
                "inviterName": {
                    "type": "string"
                },
                "expiresAt": {
                    "type": "string"
                }
            }
        },
        "taskflowsdk.AcceptInvitationRequest": {
            "type": "object",
            "properties": {
                "token": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            },
            "required": [
                "token",
                "name",
                "password"
            ]
        },
        "taskflowsdk.Project": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "businessId": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "createdBy": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                }
            }
        },
        "taskflowsdk.ProjectResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "project": {
                    "$ref": "#/definitions/taskflowsdk.Project"
                }
            }
        },
        "taskflowsdk.ProjectsResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "projects": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/taskflowsdk.Project"
                    }
                }
            }
        },
        "taskflowsdk.CreateProjectRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                }
            },
            "required": [
                "name"
            ]
        },
        "taskflowsdk.UpdateProjectRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "active",
                        "archived"
                    ]
                }
            }
        },
        "taskflowsdk.Task": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "projectId": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "assigneeId": {
                    "type": "string"
                },
                "dueDate": {
                    "type": "string"
                },
                "createdBy": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                }
            }
        },
        "taskflowsdk.TaskResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "task": {
                    "$ref": "#/definitions/taskflowsdk.Task"
                }
            }
        },
        "taskflowsdk.TasksResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "tasks": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/taskflowsdk.Task"
                    }
                }
            }
        },
        "taskflowsdk.CreateTaskRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "assigneeId": {
                    "type": "string"
                },
                "dueDate": {
                    "type": "string"
                }
            },
            "required": [
                "title"
            ]
        },
        "taskflowsdk.UpdateTaskRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "todo",
                        "in_progress",
                        "done"
                    ]
                },
                "assigneeId": {
                    "type": "string"
                },
                "dueDate": {
                    "type": "string"
                },
                "clearDueDate": {
                    "type": "boolean"
                }
            }
        },
        "taskflowsdk.TimeEntry": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "projectId": {
                    "type": "string"
                },
                "taskId": {
                    "type": "string"
                },
                "userId": {
                    "type": "string"
                },
                "minutes": {
                    "type": "integer"
                },
                "note": {
                    "type": "string"
                },
                "spentOn": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                }
            }
        },
        "taskflowsdk.TimeEntryResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "timeEntry": {
                    "$ref": "#/definitions/taskflowsdk.TimeEntry"
                }
            }
        },
        "taskflowsdk.TimeEntriesResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "timeEntries": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/taskflowsdk.TimeEntry"
                    }
                }
            }
        },
        "taskflowsdk.LogTimeRequest": {
            "type": "object",
            "properties": {
                "taskId": {
                    "type": "string"
                },
                "minutes": {
                    "type": "integer"
                },
                "note": {
                    "type": "string"
                },
                "spentOn": {
                    "type": "string"
                }
            },
            "required": [
                "minutes"
            ]
        },
        "taskflowsdk.Invoice": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "businessId": {
                    "type": "string"
                },
                "number": {
                    "type": "string"
                },
                "clientName": {
                    "type": "string"
                },
                "amountCents": {
                    "type": "integer"
                },
                "currency": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "issuedAt": {
                    "type": "string"
                },
                "dueAt": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                }
            }
        },
        "taskflowsdk.InvoiceResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "invoice": {
                    "$ref": "#/definitions/taskflowsdk.Invoice"
                }
            }
        },
        "taskflowsdk.InvoicesResponse": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "invoices": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/taskflowsdk.Invoice"
                    }
                }
            }
        },
        "taskflowsdk.CreateInvoiceRequest": {
            "type": "object",
            "properties": {
                "number": {
                    "type": "string"
                },
                "clientName": {
                    "type": "string"
                },
                "amountCents": {
                    "type": "integer"
                },
                "currency": {
                    "type": "string"
                },
                "issuedAt": {
                    "type": "string"
                },
                "dueAt": {
                    "type": "string"
                }
            },
            "required": [
                "number",
                "clientName",
                "currency"
            ]
        },
        "taskflowsdk.HealthChecks": {
            "type": "object",
            "properties": {
                "database": {
                    "type": "string"
                },
                "sessions": {
                    "type": "string"
                }
            }
        },
        "taskflowsdk.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "uptime": {
                    "type": "string"
                },
                "version": {
                    "type": "string"
                },
                "checks": {
                    "$ref": "#/definitions/taskflowsdk.HealthChecks"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "TaskFlow API",
	Description:      "Multi-tenant project management: businesses, projects, tasks, time tracking and invoices.\nAuthentication uses an HttpOnly auth_token cookie set by signup, login and invitation accept.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
