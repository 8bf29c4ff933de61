// Package api exposes the portal search core as a JSON HTTP API built on gin.
//
// Every response uses the envelope {"success": bool, "data": ..., "error": {"code", "message"}}.
//
// Routes:
//
//	GET    /health
//	GET    /api/v1/search?q=&types=&page=&limit=&suggestions=
//	GET    /api/v1/:type
//	GET    /api/v1/:type/stats
//	GET    /api/v1/news/latest?category=&limit=
//	GET    /api/v1/:type/:id
//	DELETE /api/v1/cache/:namespace?pattern=
package api
