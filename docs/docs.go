// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with `swag init -g cmd/server/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/cart/add": {
            "post": {
                "operationId": "addToCart",
                "summary": "Add one unit of an item",
                "tags": [
                    "cart"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/cart/update": {
            "post": {
                "operationId": "updateCart",
                "summary": "Set the quantity of a cart line",
                "tags": [
                    "cart"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/cart/get": {
            "post": {
                "operationId": "getCart",
                "summary": "Read the stored cart",
                "tags": [
                    "cart"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/cart/merge": {
            "post": {
                "operationId": "mergeCart",
                "summary": "Merge a guest cart into the stored cart",
                "tags": [
                    "cart"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/ministores/admin/create": {
            "post": {
                "operationId": "createMiniStore",
                "summary": "Open a mini store with its sub-admin",
                "tags": [
                    "ministore-admin"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/ministores/admin/all": {
            "get": {
                "operationId": "listMiniStores",
                "summary": "Page through every store",
                "tags": [
                    "ministore-admin"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/ministores/admin/{id}": {
            "get": {
                "operationId": "getMiniStore",
                "summary": "Store with its curated products",
                "tags": [
                    "ministore-admin"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "put": {
                "operationId": "updateMiniStore",
                "summary": "Change a store's profile or slug",
                "tags": [
                    "ministore-admin"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "delete": {
                "operationId": "deleteMiniStore",
                "summary": "Delete a store and its sub-admin",
                "tags": [
                    "ministore-admin"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/ministores/admin/{id}/toggle": {
            "patch": {
                "operationId": "toggleMiniStore",
                "summary": "Flip a store between active and inactive",
                "tags": [
                    "ministore-admin"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/ministores/admin/{id}/activity": {
            "get": {
                "operationId": "getMiniStoreActivity",
                "summary": "Recent products and orders of a store",
                "tags": [
                    "ministore-admin"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/ministores": {
            "get": {
                "operationId": "listPublicMiniStores",
                "summary": "Store directory",
                "tags": [
                    "ministore-public"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "operationId": "createMiniStoreLegacy",
                "summary": "Open a store (older payload)",
                "tags": [
                    "ministore-legacy"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/ministores/store/{slug}": {
            "get": {
                "operationId": "getPublicMiniStore",
                "summary": "Public store page",
                "tags": [
                    "ministore-public"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/ministores/{id}/toggle": {
            "patch": {
                "operationId": "toggleMiniStoreLegacy",
                "summary": "Flip a store's active flag (older route)",
                "tags": [
                    "ministore-legacy"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/ministores/{id}": {
            "delete": {
                "operationId": "deleteMiniStoreLegacy",
                "summary": "Delete a store, keeping its sub-admin account",
                "tags": [
                    "ministore-legacy"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/admin/mini-store": {
            "get": {
                "operationId": "getMiniStoreDirectoryLegacy",
                "summary": "Store directory or a single store (older route)",
                "tags": [
                    "ministore-legacy"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/newsletter/subscribe": {
            "post": {
                "operationId": "subscribeNewsletter",
                "summary": "Subscribe an email address",
                "tags": [
                    "newsletter"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/order/place": {
            "post": {
                "operationId": "placeOrder",
                "summary": "Place a cash-on-delivery order",
                "tags": [
                    "order"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/order/stripe": {
            "post": {
                "operationId": "placeStripeOrder",
                "summary": "Open a Stripe checkout session",
                "tags": [
                    "order"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/order/razorpay": {
            "post": {
                "operationId": "placeRazorpayOrder",
                "summary": "Create a Razorpay order",
                "tags": [
                    "order"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/order/verifyStripe": {
            "post": {
                "operationId": "verifyStripeOrder",
                "summary": "Confirm a Stripe checkout session",
                "tags": [
                    "order"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/order/verifyRazorpay": {
            "post": {
                "operationId": "verifyRazorpayOrder",
                "summary": "Verify a Razorpay checkout signature",
                "tags": [
                    "order"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/order/userorders": {
            "post": {
                "operationId": "listUserOrders",
                "summary": "Orders of the authenticated user",
                "tags": [
                    "order"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/order/list": {
            "post": {
                "operationId": "listAllOrders",
                "summary": "Every order with its customer",
                "tags": [
                    "order"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/order/status": {
            "post": {
                "operationId": "updateOrderStatus",
                "summary": "Change an order's status",
                "tags": [
                    "order"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/product/add": {
            "post": {
                "operationId": "addProduct",
                "summary": "Add a catalog product",
                "tags": [
                    "product"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/product/list": {
            "get": {
                "operationId": "listProducts",
                "summary": "List catalog products, newest first",
                "tags": [
                    "product"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/product/remove": {
            "post": {
                "operationId": "removeProduct",
                "summary": "Delete a catalog product",
                "tags": [
                    "product"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/product/single": {
            "post": {
                "operationId": "getProduct",
                "summary": "Fetch one product",
                "tags": [
                    "product"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/product/trending": {
            "get": {
                "operationId": "listTrendingProducts",
                "summary": "Active bestsellers, newest first",
                "tags": [
                    "product"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/sitemap.xml": {
            "get": {
                "operationId": "getSitemap",
                "summary": "XML sitemap of the storefront",
                "tags": [
                    "seo"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/robots.txt": {
            "get": {
                "operationId": "getRobots",
                "summary": "robots.txt",
                "tags": [
                    "seo"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/subadmin/auth/login": {
            "post": {
                "operationId": "loginSubAdmin",
                "summary": "Sub-admin login",
                "tags": [
                    "subadmin"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/subadmin/mystore": {
            "get": {
                "operationId": "getMyStore",
                "summary": "The caller's store with its products",
                "tags": [
                    "subadmin"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "put": {
                "operationId": "updateMyStore",
                "summary": "Change the caller's store profile",
                "tags": [
                    "subadmin"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/subadmin/mystore/products": {
            "get": {
                "operationId": "listMyProducts",
                "summary": "Products curated by the caller's store",
                "tags": [
                    "subadmin"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "operationId": "addProductToMyStore",
                "summary": "Curate an existing catalog product",
                "tags": [
                    "subadmin"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/ministores/subadmin/mystore/products/{productId}": {
            "delete": {
                "operationId": "removeProductFromMyStore",
                "summary": "Drop a product from the caller's store",
                "tags": [
                    "subadmin"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/subadmin/mystore/products/create": {
            "post": {
                "operationId": "createMyStoreProduct",
                "summary": "Create a catalog product inside the caller's store",
                "tags": [
                    "subadmin"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/subadmin/mystore/products/{productId}": {
            "put": {
                "operationId": "updateMyStoreProduct",
                "summary": "Edit a product of the caller's store",
                "tags": [
                    "subadmin"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "delete": {
                "operationId": "deleteMyStoreProduct",
                "summary": "Remove a product from the caller's store",
                "tags": [
                    "subadmin"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/subadmin/mystore/orders": {
            "get": {
                "operationId": "listMyStoreOrders",
                "summary": "Orders containing the caller's products",
                "tags": [
                    "subadmin"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/": {
            "get": {
                "operationId": "getRoot",
                "summary": "API banner",
                "tags": [
                    "system"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/health": {
            "get": {
                "operationId": "getHealth",
                "summary": "Liveness probe",
                "tags": [
                    "system"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/health": {
            "get": {
                "operationId": "getAPIHealth",
                "summary": "Liveness probe with server time",
                "tags": [
                    "system"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/user/register": {
            "post": {
                "operationId": "registerUser",
                "summary": "Register a customer",
                "tags": [
                    "user"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/user/login": {
            "post": {
                "operationId": "loginUser",
                "summary": "Customer login",
                "tags": [
                    "user"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/user/admin": {
            "post": {
                "operationId": "loginAdmin",
                "summary": "Admin login against the configured credentials",
                "tags": [
                    "user"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/user/logout": {
            "post": {
                "operationId": "logoutUser",
                "summary": "Revoke the current token",
                "tags": [
                    "user"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/webhook/stripe": {
            "post": {
                "operationId": "stripeWebhook",
                "summary": "Stripe webhook",
                "tags": [
                    "webhook"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/webhook/razorpay": {
            "post": {
                "operationId": "razorpayWebhook",
                "summary": "Razorpay webhook",
                "tags": [
                    "webhook"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer token authentication. Format: \"Bearer {token}\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "TinyMillion Storefront API",
	Description:      "Storefront backend: catalog, carts, orders with Stripe and Razorpay payments, and curated mini stores.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
