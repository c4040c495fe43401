package main

// General API documentation for swaggo. Regenerate the docs package with
// `swag init -g cmd/sigd/docs.go -o docs`.
//
// @title           sigd API
// @version         1.0
// @description     Introspection and admin API for the in-process signal registry.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
