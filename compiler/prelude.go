package compiler

// Prelude is the fixed set of supercombinators every program is
// compiled with automatically, matching spec.md §6's reserved names
// `true false cons nil compose id` and the original implementation's
// prelude text (original_source/spj/compiler.py): the boolean and
// list constructors as Pack applications, plus compose and id as
// ordinary source-level definitions. The booleans are defined as False
// and True: the lexer reserves `false`/`true` as keywords, and
// coreparse turns those keywords into references to these two globals.
const Prelude = `
False = Pack{1,0};
True = Pack{2,0};

cons = Pack{1,2};
nil = Pack{2,0};

compose f g x = f (g x);

id x = x;
`
