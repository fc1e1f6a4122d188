/*
Package schema defines the on-disk form of a model document and reads and
writes it in HCL native syntax or HCL JSON syntax.

A document holds `variable` blocks and `model` blocks:

	variable "closing_date" {
	  type    = string
	  default = "2019-12-31"
	}

	model "downtown" {
	  ref_date = var.closing_date
	  freq {
	    months = 1
	  }
	  effective_gross_income { ... }
	  total_expenses { ... }
	}

Variables are decoded first (Parse) so the models can be decoded with an
evaluation context that exposes them (File.DecodeModels).
*/
package schema
