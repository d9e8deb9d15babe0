// @title Vet Clinic API
// @version 1.0
// @description API de la clínica veterinaria: propietarios, mascotas, historias clínicas, catálogo y usuarios.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

func main() {
	Execute()
}
