// Package testinfra levanta dependencias reales (PostgreSQL) en contenedores para
// las pruebas de integración. Solo se compila con el tag "integration":
//
//	go test -tags integration ./...
package testinfra
