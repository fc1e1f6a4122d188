/*
Package loader turns configuration documents into wired model trees and back.

Loading runs in three steps:

 1. The document is parsed and its variable blocks decoded (schema.Parse).
 2. Variables are typed, given their default or an override, and exposed to
    the models as var.<name> through an hcl.EvalContext.
 3. Each model block is decoded, validated and built bottom-up into a
    multifamily.NetOperatingIncome, calling node.Wire on every node so parent
    lookups work.

ToSchema is the reverse of step 3 and is what the normalize command encodes.
*/
package loader
