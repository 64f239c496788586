package wasmproof

// preamble is the fixed header emitted before any per-module content:
// the Require/From imports and the helper Definitions (Vi32, Vi64, Mt,
// Mm, Mg, Mi, Me, Ma). Its exact text, including blank-line placement,
// is pinned by original_source/core/wasm-to-v/src/translator.rs — this
// is a byte-for-byte port of that string, not a paraphrase.
const preamble = `Require Import List.
Require Import String.
Require Import BinNat.
Require Import ZArith.
From Wasm Require Import bytes.
From Wasm Require Import numerics.
From Wasm Require Import datatypes.

Definition Vi32 i := VAL_int32 (Wasm_int.int_of_Z i32m i).
Definition Vi64 i := VAL_int64 (Wasm_int.int_of_Z i64m i).
Definition Mt l et := {|modtab_type := {|tt_limits := l; tt_elem_type := et|}|}.
Definition Mm l := {|modmem_type := l|}.
Definition Mg mut t init := {|modglob_type := {|tg_mut := mut; tg_t := t|}; modglob_init := init|}.

Definition Mi m n d := {|
  imp_module := list_byte_of_string m;
  imp_name := list_byte_of_string n;
  imp_desc := d;
|}.

Definition Me n d := {|
  modexp_name := list_byte_of_string n;
  modexp_desc := d;
|}.

Definition Ma of al := {|memarg_offset := of; memarg_align := al|}.

`
