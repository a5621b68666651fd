package main

type seedBook struct {
	Title       string
	Author      string
	Description string
	CoverURL    string
}

// catalog es el acervo técnico inicial.
var catalog = []seedBook{
	{"Node.js Design Patterns", "Mario Casciaro", "Patrones de diseño para aplicaciones Node.js eficientes y escalables.", "https://m.media-amazon.com/images/I/71W5FQMX8LL.jpg"},
	{"Docker Deep Dive", "Nigel Poulton", "Contenedores y orquestación con Docker de punta a punta.", "https://m.media-amazon.com/images/I/71Bkk+WVLsL._UF1000,1000_QL80_.jpg"},
	{"Arquitetura Limpa", "Robert C. Martin", "Guía del artesano para la estructura y el diseño de software.", "https://m.media-amazon.com/images/I/815d9tE7jSL.jpg"},
	{"Angular: Development with TypeScript", "Yakov Fain", "Desarrollo frontend moderno con Angular y TypeScript.", "https://m.media-amazon.com/images/I/71HEl0ZR4jL._AC_UF1000,1000_QL80_.jpg"},
	{"Designing Data-Intensive Applications", "Martin Kleppmann", "Las grandes ideas detrás de sistemas confiables y escalables.", "https://m.media-amazon.com/images/I/71Le4i4KrFL._AC_UF1000,1000_QL80_.jpg"},
	{"Padrões de Projeto (GoF)", "Erich Gamma", "Soluciones reutilizables de software orientado a objetos.", "https://m.media-amazon.com/images/I/9169z5-CtML._UF1000,1000_QL80_.jpg"},
	{"Microsserviços Prontos Para a Produção", "Susan J. Fowler", "Sistemas estandarizados en una organización de ingeniería.", "https://m.media-amazon.com/images/I/81wWegQvePL._UF1000,1000_QL80_.jpg"},
	{"The DevOps Handbook", "Gene Kim", "Agilidad, confiabilidad y seguridad en la tecnología.", "https://m.media-amazon.com/images/I/71mhqEw8LcL._AC_UF1000,1000_QL80_.jpg"},
	{"Refatoração", "Martin Fowler", "Mejorando el diseño del código existente.", "https://m.media-amazon.com/images/I/81qTq0PQp3L._UF1000,1000_QL80_.jpg"},
	{"Engenharia de Software Moderna", "David Farley", "Entrega continua y ciencia en el desarrollo de software.", "https://m.media-amazon.com/images/I/51YZ7o1Y9JL._SL500_.jpg"},
}
