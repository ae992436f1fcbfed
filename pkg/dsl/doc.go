/*
Package dsl provides a Go DSL for programmatically constructing process definitions.

It allows developers to describe flows with a fluent builder instead of writing YAML or JSON
by hand. This is particularly useful for generated processes and unit tests.

Example usage:

	b := dsl.New("order", "Order handling")

	b.Add("start").Start("Order received").Go("pack")
	b.Add("pack").Task("Pack items").Go("end")
	b.Add("end").End("Shipped")

	def, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

The same description can be serialized with YAML and saved to any ports.DefinitionStore.
*/
package dsl
